// Package naming assigns object identities and names to KNX group addresses.
//
// A Convention describes how a gateway lays its objects out over group
// addresses: each main group holds modules of BlockSize sub addresses,
// each module addresses LightsPerModule lights followed by GroupsPerModule
// light groups, and the middle group selects the function.
//
// Resolution is a batch operation. Object numbers continue across main
// groups, so the layout of every main group depends on the highest sub
// address used by all lower main groups:
//
//	res := naming.DefaultConvention().Resolve(sources)
//	for _, e := range res.Entries {
//	    fmt.Println(e.Address, e.GeneratedName)
//	}
//
// Names can then be overridden per address (MergeOverrides,
// ApplyOverrides) or per object through a CSV template (ExportTemplate,
// ImportTemplate).
package naming
