package diary

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/timeflow/internal/client/models"
	"github.com/dmitrijs2005/timeflow/internal/cryptox"
)

// marshal encodes v without HTML escaping, the way JSON.stringify does.
func marshal(v any, indent bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func encodeDocument(entries []models.DiaryEntry, key string, doc models.PersistedFile) ([]byte, error) {
	plain, err := marshal(entries, false)
	if err != nil {
		return nil, fmt.Errorf("encode entries: %w", err)
	}
	sealed, err := cryptox.Seal(string(plain), key)
	if err != nil {
		return nil, fmt.Errorf("seal entries: %w", err)
	}
	doc.EncryptedDiaries = sealed
	doc.Diaries = nil
	return marshal(doc, true)
}

func parseDocument(raw []byte) (models.PersistedFile, error) {
	var doc models.PersistedFile
	if err := json.Unmarshal(raw, &doc); err != nil {
		return models.PersistedFile{}, fmt.Errorf("%w: %w", ErrMalformedData, err)
	}
	return doc, nil
}

// decodeEntries extracts the entry list. A payload that is not base64 at
// all yields an empty list and a warning; one that decodes to something
// other than an entry list is an error.
func decodeEntries(doc models.PersistedFile, key string) (entries []models.DiaryEntry, warning, err error) {
	if doc.EncryptedDiaries == "" {
		return doc.Diaries, nil, nil
	}

	plain, err := cryptox.Open(doc.EncryptedDiaries, key)
	if errors.Is(err, cryptox.ErrInvalidBase64) {
		return nil, fmt.Errorf("%w: %w", ErrMalformedData, err), nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrMalformedData, err)
	}
	if err := json.Unmarshal([]byte(plain), &entries); err != nil {
		return nil, nil, fmt.Errorf("%w: entries do not decode, the password may be wrong", ErrMalformedData)
	}
	return entries, nil, nil
}
