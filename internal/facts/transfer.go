package facts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/swisscitizen/prep/internal/swisscitizen"
)

// ExportFilename is the suggested download name for Export.
const ExportFilename = "schweizer-fakten.json"

var ErrMalformedImport = errors.New("malformed import file")

// Export writes the whole collection as indented JSON.
func (r *Repository) Export(ctx context.Context, w io.Writer) error {
	r.mu.Lock()
	all, err := r.load(ctx)
	r.mu.Unlock()
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(all); err != nil {
		return fmt.Errorf("encoding facts: %w", err)
	}
	return nil
}

// Import appends the facts of a JSON array to the collection. Records are
// taken as-is: no validation and no id collision checks. A document that is
// not a JSON array leaves the store unchanged.
func (r *Repository) Import(ctx context.Context, rd io.Reader) (int, error) {
	var imported []swisscitizen.Fact
	if err := json.NewDecoder(rd).Decode(&imported); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return 0, err
	}
	if err := r.save(ctx, append(all, imported...)); err != nil {
		return 0, err
	}
	r.logger.Info("imported facts", "count", len(imported), "total", len(all)+len(imported))
	return len(imported), nil
}
