package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/timeflow/internal/client/models"
	"github.com/dmitrijs2005/timeflow/internal/timex"
)

// FileInfoKey holds the name of the last data file used.
const FileInfoKey = "diaryDataFileInfo"

// Sidecar remembers which data file was used last. The record is advisory:
// it cannot reopen the file, only remind the user which one to pick.
type Sidecar struct {
	kv KV
}

func NewSidecar(kv KV) *Sidecar {
	return &Sidecar{kv: kv}
}

func (s *Sidecar) Remember(ctx context.Context, name string) error {
	data, err := json.Marshal(models.FileInfo{Name: name, LastModified: timex.NewISOTime(timex.Now())})
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, FileInfoKey, data)
}

// Last returns the remembered file, or nil when there is none. A record
// that does not decode is reported as an error.
func (s *Sidecar) Last(ctx context.Context) (*models.FileInfo, error) {
	data, err := s.kv.Get(ctx, FileInfoKey)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	var info models.FileInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("decode %s: %w", FileInfoKey, err)
	}
	return &info, nil
}
