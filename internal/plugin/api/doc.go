// Package api provides the Lua API modules exposed to docproxy scripts.
//
// Scripts reach the host through the "ks" namespace:
//
//	local ks = require("ks")
//	ks.doc.insert("hello")
//	print(ks.doc.before())
//
// Each module implements Module and registers itself under a _ks_<name>
// global. Registry.InjectAll moves those globals into the preloaded "ks"
// module.
//
// Queries that the proxy cannot answer return nil. Edits on a proxy whose
// document is gone do nothing. Scripts never see an error for a missing
// document, only for bad arguments.
package api
