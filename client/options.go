package client

import "github.com/cansec/cbs-client/aead"

// Option configures optional Context behavior beyond the required
// Config/Clock/TRNG/Observer arguments to New.
type Option func(*Context)

// WithPrimitive overrides the AEAD primitive factory used for every
// init/assoc/crypt/finalize cycle. The default is aead.NewAESGCM; swap it
// out to match a Server that uses a different primitive, per §1's "AEAD
// primitive... treated as a black-box" contract — the core client only ever
// talks to it through the aead.Primitive interface.
func WithPrimitive(factory func() aead.Primitive) Option {
	return func(c *Context) {
		c.newPrimitive = factory
	}
}

func defaultPrimitiveFactory() aead.Primitive {
	return aead.NewAESGCM()
}
