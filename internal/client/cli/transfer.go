package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/timeflow/internal/client/storage"
)

// errCancelled marks a dismissed file prompt. Tabs report it as a plain
// "Cancelled." rather than an error.
var errCancelled = errors.New("cancelled")

func exportFile(ctx context.Context, picker storage.FilePicker, suggestedName string, data []byte) (string, error) {
	path, err := storage.ExportTo(ctx, picker, suggestedName, data)
	if storage.IsDismissed(err) {
		return "", errCancelled
	}
	return path, err
}

// importFile reads a picked file and asks whether it is merged into the
// current data or replaces it.
func importFile(ctx context.Context, c *Console, picker storage.FilePicker, what string) (raw []byte, merge bool, err error) {
	path, err := picker.PickOpen(ctx)
	if storage.IsDismissed(err) {
		return nil, false, errCancelled
	}
	if err != nil {
		return nil, false, err
	}
	raw, err = storage.NewFileHandle(path).Read(ctx)
	if err != nil {
		return nil, false, err
	}
	merge, err = c.Confirm(ctx, "Merge the imported "+what+" with the current ones? Answering no replaces them.")
	if err != nil {
		return nil, false, err
	}
	return raw, merge, nil
}

func importVerb(merge bool) string {
	if merge {
		return "merged"
	}
	return "replaced"
}
