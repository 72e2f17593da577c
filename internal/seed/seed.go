// Package seed loads book drafts from YAML seed files.
//
// A seed file looks like:
//
//	books:
//	  - productName: Mon livre
//	    price: 10
//	    quantity: 1
//	    supplierName: Mr X
//	    supplierPhone: 00 56 00 56
//
// Documents are checked against an embedded CUE schema before decoding, so a
// mistyped value (price: ten) or an unknown key is rejected with its path.
package seed

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/roach88/invapp/internal/book"
)

//go:embed schema.cue
var schemaCUE string

// ErrInvalidSeed is returned for documents that are not valid YAML or do not
// match the seed schema.
var ErrInvalidSeed = errors.New("invalid seed file")

type seedFile struct {
	Books []book.Draft `yaml:"books"`
}

// Demo returns the illustrative record inserted by the demo command.
func Demo() book.Draft {
	return book.NewDraft("Mon livre", 10, 1, "Mr X", "00 56 00 56")
}

// LoadFile reads and validates a seed file from disk.
func LoadFile(path string) ([]book.Draft, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	drafts, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return drafts, nil
}

// Load reads a seed document, validates it and returns its drafts in file
// order. An empty document yields no drafts.
func Load(r io.Reader) ([]book.Draft, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}
	if doc == nil {
		return []book.Draft{}, nil
	}

	if err := validate(doc); err != nil {
		return nil, err
	}

	var sf seedFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}
	if sf.Books == nil {
		sf.Books = []book.Draft{}
	}
	return sf.Books, nil
}

// validate unifies the decoded document with #Seed.
func validate(doc any) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile seed schema: %w", err)
	}
	seedDef := schema.LookupPath(cue.ParsePath("#Seed"))

	value := ctx.Encode(doc)
	if err := value.Err(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSeed, cueerrors.Details(err, nil))
	}

	if err := seedDef.Unify(value).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSeed, cueerrors.Details(err, nil))
	}
	return nil
}
