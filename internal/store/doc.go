// Package store is the wallet's persistence and query layer.
//
// It owns the SQLite handle, runs every write in a transaction, and after each
// commit publishes the entity topics the write touched to a livequery.Broker.
// Live reads (AllPasses, AllTags, AllGroups, ManualOrder) are subscriptions
// over that broker: they emit the current state at once and again after every
// relevant commit until their context is cancelled.
//
// Lookups never report "not found" as an error; FindPassByID returns nil.
// Every I/O failure wraps common.ErrStorage.
//
// Typical Usage
//
//	st, _ := store.Open(ctx, "wallet.db", log)
//	defer st.Close()
//	_ = st.InsertPass(ctx, pass)
//	for passes := range st.AllPasses(ctx) {
//	    render(passes)
//	}
package store
