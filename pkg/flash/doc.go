// Package flash carries serialized state across a redirect boundary with
// strict one-shot semantics: a value stored before the redirect is consumed
// by exactly one read on a subsequent request and then gone.
//
// The Store interface is an explicit capability passed to whatever needs
// flashing; there is no ambient global state. Four implementations ship:
//
//   - CookieStore: encrypted cookie, no server-side state. Best default.
//   - MemoryStore: per-session in-process map with TTL. Tests and
//     single-process apps.
//   - RedisStore: GETDEL-based consumption, atomic per session.
//   - PostgresStore: DELETE ... RETURNING consumption.
//
// Server-side stores identify the browser with a signed session cookie and
// scope every key to that session, so concurrent users never observe each
// other's flashes.
//
//	store := flash.NewCookieStore(cookieMgr)
//	_ = store.Put(ctx, w, r, "contact", snapshot)
//	// after the redirect:
//	err := store.Take(ctx, w, r, "contact", &snapshot) // flash.ErrNoSnapshot when absent
package flash
