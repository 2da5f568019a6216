package sortcodec

import (
	"github.com/target/sortparam/internal/domain/model"
	apperrors "github.com/target/sortparam/internal/errors"
)

const (
	singleDefaultName = "SortDefault"
	multiDefaultName  = "SortDefaults"
)

// ResolveDefault combines the default declarations of a site into one Sort.
//
// A single declaration resolves to its own Sort. A collection is concatenated in declaration
// order. Without any declaration the fallback is returned unchanged, including a nil fallback
// meaning "no sort at all". Declaring both forms is ambiguous and fails.
func ResolveDefault(defaults *model.SortDefaults, fallback *model.Sort) (*model.Sort, error) {
	if defaults.HasSingle() && defaults.HasMultiple() {
		return nil, apperrors.AmbiguousDefaultf(
			"cannot use both %s and %s on site %q; move %s into %s to define sorting order",
			multiDefaultName, singleDefaultName, defaults.Site, singleDefaultName, multiDefaultName)
	}

	if defaults.HasSingle() {
		s := defaults.Single.Sort()
		return &s, nil
	}

	if defaults.HasMultiple() {
		s := model.Unsorted()
		for _, d := range defaults.Multiple {
			// A declaration without properties adds nothing; it does not reset what came before.
			s = s.And(d.Sort())
		}
		return &s, nil
	}

	return fallback, nil
}
