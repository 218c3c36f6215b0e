// Package cookie manages plain, signed and encrypted cookies, plus the
// one-shot flash cookies the form flash bridge is built on.
//
// A Manager is constructed with one or more secrets; the first secret signs
// and encrypts new cookies while older secrets keep previously issued cookies
// readable during key rotation:
//
//	mgr, err := cookie.New([]string{os.Getenv("COOKIE_SECRET")})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Flash values survive exactly one read.
//	_ = mgr.SetFlash(w, r, "contact", snapshot)
//	// ...on the next request:
//	var snap Snapshot
//	err = mgr.GetFlash(w, r, "contact", &snap) // deletes the cookie
//
// Flash payloads are JSON-encoded and AES-GCM encrypted, so state carried
// across a redirect is neither readable nor forgeable by the client.
package cookie
