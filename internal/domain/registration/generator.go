// Package registration generates Australian business registration identifiers
// (ACN and ABN) that satisfy their official check-digit algorithms.
package registration

// RandomSource produces uniformly distributed integers in the inclusive range [min, max].
type RandomSource interface {
	IntRange(min, max int64) int64
}

// IdentifierGenerator produces synthetic ACNs and ABNs.
type IdentifierGenerator interface {
	// GenerateACN returns a random ACN with a valid check digit
	GenerateACN() ACN
	// GenerateABN returns the ABN for acn, or for a freshly generated ACN when acn is nil
	GenerateABN(acn *ACN) ABN
	// GenerateABNACN returns an ABN together with the ACN it was derived from
	GenerateABNACN() (ABN, ACN)
}

// Generator implements IdentifierGenerator on top of an injected RandomSource.
// It holds no state of its own; concurrent use is safe when the source is.
type Generator struct {
	rng RandomSource
}

var _ IdentifierGenerator = (*Generator)(nil)

// NewGenerator creates a Generator drawing from rng
func NewGenerator(rng RandomSource) *Generator {
	return &Generator{rng: rng}
}

// GenerateACN draws an 8-digit base and appends its check digit.
// It panics if the source returns a value outside the requested range.
func (g *Generator) GenerateACN() ACN {
	return MustACNFromBase(g.rng.IntRange(0, MaxACNBase))
}

// GenerateABN derives an ABN from acn, generating the ACN first when acn is nil.
func (g *Generator) GenerateABN(acn *ACN) ABN {
	if acn == nil {
		generated := g.GenerateACN()
		acn = &generated
	}
	return ABNFromACN(*acn)
}

// GenerateABNACN returns a self-consistent pair: the ABN's significant digits equal the ACN.
func (g *Generator) GenerateABNACN() (ABN, ACN) {
	acn := g.GenerateACN()
	return g.GenerateABN(&acn), acn
}
