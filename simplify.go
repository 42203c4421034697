package functree

import "fmt"

// ============================================================
// Simplification driver
// ============================================================

// DefaultMaxPasses bounds FullSimplify.
const DefaultMaxPasses = 64

// Simplify runs one rewrite pass over n.
func Simplify(n Node) Node { return n.Simplify() }

// FullSimplify repeats Simplify until two successive passes are Equal.
func FullSimplify(n Node) (Node, error) { return FullSimplifyN(n, DefaultMaxPasses) }

// FullSimplifyN is FullSimplify with an explicit pass limit. When the limit is
// reached it returns the last tree together with ErrPassLimit.
func FullSimplifyN(n Node, maxPasses int) (Node, error) {
	if maxPasses < 1 {
		maxPasses = 1
	}
	cur := n
	for i := 0; i < maxPasses; i++ {
		next := cur.Simplify()
		if next.Equal(cur) {
			return next, nil
		}
		cur = next
	}
	return cur, fmt.Errorf("%w after %d passes: %s", ErrPassLimit, maxPasses, cur)
}
