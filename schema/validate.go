package schema

import (
	"fmt"
	"sort"

	"annotation-merger/descriptor"
	"annotation-merger/internal/diagnostic"
)

// Validate validates a definitions file structurally: name uniqueness,
// kind spelling, element-type references, default value shapes, and alias
// declarations that can be checked without building a mapping tree.
// Tree-level rules (meta-presence, alias chains, mirror invariants) are
// validated during construction by the mapping package.
func Validate(df *DefinitionFile) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if df == nil {
		res.AddError("definitions_nil", "definitions file is nil", "", "")
		return res
	}

	byName := make(map[string]*AnnotationDef, len(df.Annotations))

	for i := range df.Annotations {
		ad := &df.Annotations[i]
		if ad.Name == "" {
			res.AddError("annotation_unnamed", "annotation definition without a name", "", "")
			continue
		}

		if _, ok := byName[ad.Name]; ok {
			res.AddError("annotation_duplicate", fmt.Sprintf("duplicate annotation %q", ad.Name), ad.Name, "")
			continue
		}

		byName[ad.Name] = ad
	}

	for i := range df.Annotations {
		validateAnnotation(res, &df.Annotations[i], byName)
	}

	return res
}

func validateAnnotation(res *diagnostic.Diagnostics, ad *AnnotationDef, byName map[string]*AnnotationDef) {
	seen := make(map[string]struct{}, len(ad.Attributes))

	for i := range ad.Attributes {
		attr := &ad.Attributes[i]
		if attr.Name == "" {
			res.AddError("attribute_unnamed", "attribute without a name", ad.Name, "")
			continue
		}

		if _, ok := seen[attr.Name]; ok {
			res.AddError("attribute_duplicate", fmt.Sprintf("duplicate attribute %q", attr.Name), ad.Name, attr.Name)
			continue
		}

		seen[attr.Name] = struct{}{}

		validateAttribute(res, ad, attr, byName)
	}

	for _, m := range ad.Meta {
		validateMetaRef(res, ad, m, byName)
	}
}

func validateAttribute(res *diagnostic.Diagnostics, ad *AnnotationDef, attr *AttributeDef, byName map[string]*AnnotationDef) {
	kind, err := descriptor.ParseKind(attr.Kind)
	if err != nil {
		res.AddError("kind_unknown", err.Error(), ad.Name, attr.Name)
		return
	}

	if kind.IsNested() {
		if attr.Elem == "" {
			res.AddError("elem_missing",
				fmt.Sprintf("attribute of kind %s must name its element annotation type", kind),
				ad.Name, attr.Name)
		} else if _, ok := byName[attr.Elem]; !ok {
			res.AddError("elem_unknown",
				fmt.Sprintf("element annotation type %q is not defined", attr.Elem),
				ad.Name, attr.Name)
		}
	} else if attr.Elem != "" {
		res.AddWarning("elem_ignored",
			fmt.Sprintf("elem is meaningless for kind %s", kind), ad.Name, attr.Name)
	}

	validateDefaultShape(res, ad, attr, kind)
	validateAlias(res, ad, attr, byName)
}

// validateDefaultShape checks that a declared default matches the declared
// kind: arrays for array kinds, maps for annotation kinds, bare scalars
// otherwise.
func validateDefaultShape(res *diagnostic.Diagnostics, ad *AnnotationDef, attr *AttributeDef, kind descriptor.Kind) {
	if attr.Default == nil {
		return
	}

	_, isArray := attr.Default.([]any)
	_, isMap := attr.Default.(map[string]any)

	var bad bool

	switch kind {
	case descriptor.KindScalar:
		bad = isArray || isMap
	case descriptor.KindScalarArray, descriptor.KindAnnotationArray:
		bad = !isArray
	case descriptor.KindAnnotation:
		bad = !isMap
	}

	if bad {
		res.AddError("default_shape",
			fmt.Sprintf("default value does not match kind %s", kind), ad.Name, attr.Name)
	}
}

func validateAlias(res *diagnostic.Diagnostics, ad *AnnotationDef, attr *AttributeDef, byName map[string]*AnnotationDef) {
	if attr.Alias == nil {
		return
	}

	targetType := attr.Alias.Type
	if targetType == "" {
		targetType = ad.Name
	}

	target, ok := byName[targetType]
	if !ok {
		res.AddError("alias_target_type_unknown",
			fmt.Sprintf("alias targets undefined annotation type %q", targetType), ad.Name, attr.Name)

		return
	}

	targetAttr := attr.Alias.Attribute
	if targetAttr == "" {
		targetAttr = attr.Name
	}

	found := false

	for i := range target.Attributes {
		if target.Attributes[i].Name == targetAttr {
			found = true
			break
		}
	}

	if !found {
		res.AddError("alias_target_missing",
			fmt.Sprintf("alias targets %s.%s which does not exist", targetType, targetAttr),
			ad.Name, attr.Name)

		return
	}

	if targetType == ad.Name && targetAttr == attr.Name {
		res.AddError("alias_self", "attribute must not alias itself", ad.Name, attr.Name)
	}
}

func validateMetaRef(res *diagnostic.Diagnostics, ad *AnnotationDef, m MetaRef, byName map[string]*AnnotationDef) {
	meta, ok := byName[m.Type]
	if !ok {
		res.AddError("meta_type_unknown",
			fmt.Sprintf("meta-annotation %q is not defined", m.Type), ad.Name, "")

		return
	}

	// Sorted for deterministic diagnostic order.
	keys := make([]string, 0, len(m.Values))
	for key := range m.Values {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		known := false

		for i := range meta.Attributes {
			if meta.Attributes[i].Name == key {
				known = true
				break
			}
		}

		if !known {
			res.AddWarning("meta_value_unknown",
				fmt.Sprintf("meta-annotation %q declares no attribute %q", m.Type, key), ad.Name, key)
		}
	}
}
