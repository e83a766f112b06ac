package naming

import (
	"errors"
	"sort"
	"strings"

	"github.com/nerrad567/knx-ga-studio/internal/knx"
)

// Source is one address read from a document, before resolution.
type Source struct {
	// Address is the parsed group address.
	Address knx.GroupAddress

	// Text is the address exactly as written in the document. It keys
	// name overrides; when empty, Address.String() is used.
	Text string

	// Name is the name the document currently gives the address.
	Name string

	// DPT and Location are carried through to the entry untouched.
	DPT      string
	Location string
}

// Entry is one resolved group address.
type Entry struct {
	Address       string     `json:"address"`
	OriginalName  string     `json:"original_name"`
	GeneratedName string     `json:"generated_name"`
	FinalName     string     `json:"final_name"`
	Main          int        `json:"main"`
	Middle        int        `json:"middle"`
	Sub           int        `json:"sub"`
	ModuleInMain  int        `json:"module_in_main"`
	ModuleGlobal  int        `json:"module_global"`
	ObjectType    ObjectType `json:"object_kind"`
	ObjectLabel   string     `json:"object_type"`
	ObjectNo      int        `json:"object_no"`
	FunctionName  string     `json:"func_name"`
	FunctionCode  int        `json:"func_no"`
	DeviceID      int        `json:"device_no"`
	DPT           string     `json:"dpt,omitempty"`
	Location      string     `json:"location,omitempty"`
}

// Identity returns the object identity the entry belongs to.
func (e Entry) Identity() Identity {
	return Identity{
		ModuleInMain: e.ModuleInMain,
		ModuleGlobal: e.ModuleGlobal,
		Type:         e.ObjectType,
		ObjectNo:     e.ObjectNo,
	}
}

// Resolution is the result of resolving one batch.
type Resolution struct {
	// Entries are ordered by (main, middle, sub); equal addresses keep
	// their input order.
	Entries []Entry

	// Layouts holds one layout per main group with eligible addresses.
	Layouts map[int]MainLayout

	// Ineligible counts sources the convention does not rename.
	Ineligible int
}

// Resolve assigns object identities and generated names to a batch.
//
// Resolution runs in two passes because any address can raise its main
// group's extent and shift the offsets of every later main group:
//  1. filter eligible sources and discover the extent of each main group
//  2. allocate layouts, then classify and name each source
//
// The result depends only on the set of sources, never on their order.
func (c Convention) Resolve(sources []Source) *Resolution {
	type candidate struct {
		src Source
		fn  knx.Function
	}

	candidates := make([]candidate, 0, len(sources))
	addrs := make([]knx.GroupAddress, 0, len(sources))
	res := &Resolution{}

	for _, src := range sources {
		fn, err := c.Eligible(src.Address)
		if err != nil {
			if errors.Is(err, ErrIneligibleAddress) {
				res.Ineligible++
			}
			continue
		}
		candidates = append(candidates, candidate{src: src, fn: fn})
		addrs = append(addrs, src.Address)
	}

	res.Layouts = c.BuildLayouts(DiscoverExtents(addrs))

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].src.Address.Compare(candidates[j].src.Address) < 0
	})

	res.Entries = make([]Entry, 0, len(candidates))
	for _, cand := range candidates {
		res.Entries = append(res.Entries, c.newEntry(cand.src, cand.fn, res.Layouts[cand.src.Address.Main]))
	}

	return res
}

// newEntry classifies and names one eligible source.
func (c Convention) newEntry(src Source, fn knx.Function, layout MainLayout) Entry {
	ga := src.Address
	id := c.Classify(ga.Sub, layout)
	generated := c.GeneratedName(id.Type, id.ObjectNo, fn.Code)

	address := strings.TrimSpace(src.Text)
	if address == "" {
		address = ga.String()
	}

	return Entry{
		Address:       address,
		OriginalName:  src.Name,
		GeneratedName: generated,
		FinalName:     generated,
		Main:          ga.Main,
		Middle:        ga.Middle,
		Sub:           ga.Sub,
		ModuleInMain:  id.ModuleInMain,
		ModuleGlobal:  id.ModuleGlobal,
		ObjectType:    id.Type,
		ObjectLabel:   c.Label(id.Type),
		ObjectNo:      id.ObjectNo,
		FunctionName:  fn.Name,
		FunctionCode:  fn.Code,
		DeviceID:      c.DeviceID,
		DPT:           src.DPT,
		Location:      src.Location,
	}
}
