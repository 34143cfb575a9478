// Package implementors carries "which types implement trait X" data from
// generated producers to the documentation viewer.
//
// A producer owns a ModuleMap: module name to an ordered list of opaque,
// pre-rendered Records. The viewer (the consumer) may become ready before
// or after any producer runs. A Coordinator reconciles the two without an
// explicit initialization order.
//
// # Delivery
//
// Publish checks whether a consumer hook is installed:
//
//   - installed: the hook is called synchronously with the map
//   - absent: the map is buffered
//
// RegisterConsumer installs the hook and drains the buffer. Either way the
// consumer sees each map exactly once and record order is preserved.
//
//	c := implementors.NewCoordinator(implementors.WithName("num::Num"))
//	_ = c.Publish(implementors.ModuleMap{"num": {recA, recB}}) // buffered
//	_ = c.RegisterConsumer(page.Absorb)                        // drained
//
// # Modes
//
// ModeQueue (default) buffers every early publication. ModeSlot keeps one
// pending map and a later publication replaces an undelivered one, which
// matches pages that only ever load a single fragment per trait.
//
// # Producers
//
// Producer wraps one map with a one-shot Publish and exposes its State:
//
//	Unregistered -> DeliveredImmediately
//	Unregistered -> Buffered -> Delivered
//	Unregistered -> Buffered -> Dropped   (ModeSlot only)
//
// # Board
//
// A documentation site has one coordinator per trait page. Board creates
// them lazily by trait path. Global returns the process-wide board used by
// generated packages under pkg/fragments, which publish from init:
//
//	func init() {
//	    if err := producer.Publish(implementors.Global().For(Trait)); err != nil {
//	        panic(err)
//	    }
//	}
//
// # Metrics
//
// implindex_publications_total{trait,outcome} and
// implindex_pending_maps{trait} are registered with the default Prometheus
// registry.
package implementors
