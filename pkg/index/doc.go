// Package index is the consumer side of the implementor bridge: the
// page-wide registry a documentation viewer reads.
//
// Each trait gets a Page whose Absorb method is installed as the consumer
// hook on that trait's coordinator:
//
//	x := index.New()
//	if err := x.AttachAll(implementors.Global()); err != nil {
//	    return err
//	}
//	page, _ := x.Lookup("num::Num")
//	for _, e := range page.Entries() {
//	    fmt.Println(e.Module, len(e.Implementors))
//	}
//
// Snapshot and PageSnapshot return documents ready for pkg/serializer.
package index
