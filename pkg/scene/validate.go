package scene

import (
	stderrors "errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/arranger/pkg/errors"
)

// validate is the shared validator instance; it caches struct metadata.
var validate = validator.New()

// Validate checks a document before it is built into a scene. All failures
// carry errors.ErrCodeInvalidScene.
func Validate(doc Document) error {
	if err := validate.Struct(doc); err != nil {
		return formatValidationError(err)
	}

	items := make(map[string]int, len(doc.Items))
	connectors := make(map[string]bool)
	for i, it := range doc.Items {
		if it.ID != "" {
			if _, dup := items[it.ID]; dup {
				return errors.New(errors.ErrCodeInvalidScene, "duplicate item id %q", it.ID)
			}
			items[it.ID] = i
		}
		for name, v := range map[string]*float64{"x": it.X, "y": it.Y, "padding": it.Padding} {
			if v != nil && !isFinite(*v) {
				return errors.New(errors.ErrCodeInvalidScene, "item %s: %s must be finite", label(it, i), name)
			}
		}
		if it.Parent != "" && (deref(it.X) < 0 || deref(it.Y) < 0) {
			return errors.New(errors.ErrCodeInvalidScene, "item %s: position inside parent %q must be non-negative", label(it, i), it.Parent)
		}
		if !isFinite(it.Width) || !isFinite(it.Height) {
			return errors.New(errors.ErrCodeInvalidScene, "item %s: size must be finite", label(it, i))
		}
		for _, c := range it.Connectors {
			if connectors[c.ID] {
				return errors.New(errors.ErrCodeInvalidScene, "duplicate connector id %q", c.ID)
			}
			connectors[c.ID] = true
		}
	}

	for i, it := range doc.Items {
		if it.Parent == "" {
			continue
		}
		if _, ok := items[it.Parent]; !ok {
			return errors.New(errors.ErrCodeInvalidScene, "item %s: unknown parent %q", label(it, i), it.Parent)
		}
		if hasCycle(doc.Items, items, i) {
			return errors.New(errors.ErrCodeInvalidScene, "item %s: parent chain forms a cycle", label(it, i))
		}
	}

	joins := make(map[string]bool, len(doc.Joins))
	for _, j := range doc.Joins {
		if j.ID != "" {
			if joins[j.ID] {
				return errors.New(errors.ErrCodeInvalidScene, "duplicate join id %q", j.ID)
			}
			joins[j.ID] = true
		}
		for _, ref := range []string{j.From, j.To} {
			if !connectors[ref] {
				return errors.New(errors.ErrCodeInvalidScene, "join %q: unknown connector %q", j.ID, ref)
			}
		}
	}
	return nil
}

// hasCycle walks the parent chain starting at index start.
func hasCycle(docs []ItemDocument, index map[string]int, start int) bool {
	seen := map[int]bool{start: true}
	for cur := docs[start].Parent; cur != ""; {
		i := index[cur]
		if seen[i] {
			return true
		}
		seen[i] = true
		cur = docs[i].Parent
	}
	return false
}

func label(it ItemDocument, i int) string {
	if it.ID != "" {
		return fmt.Sprintf("%q", it.ID)
	}
	return fmt.Sprintf("#%d", i)
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// formatValidationError reports the first failed constraint in a readable form.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) || len(verrs) == 0 {
		return errors.Wrap(errors.ErrCodeInvalidScene, err, "invalid scene")
	}

	e := verrs[0]
	field := e.Namespace()
	switch e.Tag() {
	case "required":
		return errors.New(errors.ErrCodeInvalidScene, "%s: field is required", field)
	case "gt":
		return errors.New(errors.ErrCodeInvalidScene, "%s: must be greater than %s", field, e.Param())
	case "gte":
		return errors.New(errors.ErrCodeInvalidScene, "%s: must be at least %s", field, e.Param())
	case "lte":
		return errors.New(errors.ErrCodeInvalidScene, "%s: must not exceed %s", field, e.Param())
	case "oneof":
		return errors.New(errors.ErrCodeInvalidScene, "%s: must be one of [%s]", field, e.Param())
	default:
		return errors.New(errors.ErrCodeInvalidScene, "%s: validation failed (%s)", field, e.Tag())
	}
}
