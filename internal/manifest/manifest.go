// Package manifest declares the fixed, ordered set of artifacts one pipeline
// run must produce. The manifest is static: order defines generation
// sequence, but entries are independent of one another within a run.
package manifest

// Category selects which output workspace subdirectory an artifact lands in.
type Category string

const (
	// Interface artifacts are derived directly from the registry's API surface.
	Interface Category = "interface"
	// Common artifacts are shared helpers consumed by several build targets.
	Common Category = "common"
)

// Entry maps a logical output name to the target artifact filename the
// external generator must produce.
type Entry struct {
	Name     string
	Target   string
	Category Category
}

// Default returns the pipeline's artifact manifest in generation order.
func Default() []Entry {
	return []Entry{
		{Name: "dispatch-table", Target: "api_dispatch_table.h", Category: Interface},
		{Name: "dispatch-helper", Target: "api_dispatch_table_helper.h", Category: Interface},
		{Name: "enum-helper", Target: "api_enum_string_helper.h", Category: Interface},
		{Name: "typemap-helper", Target: "api_typemap_helper.h", Category: Interface},
		{Name: "object-types", Target: "api_object_types.h", Category: Common},
		{Name: "safe-struct-header", Target: "api_safe_struct.h", Category: Common},
		{Name: "safe-struct-source", Target: "api_safe_struct.cpp", Category: Common},
	}
}
