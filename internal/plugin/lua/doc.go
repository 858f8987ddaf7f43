// Package lua runs docproxy scripts in a sandboxed gopher-lua state.
//
//	state, err := lua.NewState(lua.WithOutput(os.Stdout))
//	if err != nil {
//	    return err
//	}
//	defer state.Close()
//
//	if err := state.Inject(registry); err != nil {
//	    return err
//	}
//	if err := state.DoFile(ctx, "edit.lua"); err != nil {
//	    return err
//	}
//
// The sandbox opens only the base, package, table, string and math
// libraries, removes the functions that load code from disk or strings,
// and restricts require to those libraries and the preloaded "ks" module.
package lua
