package wfc

// deterministicShuffle permutes a in place using the bit-exact algorithm
// specified for cross-implementation reproducibility:
//
//  1. h := seed
//  2. h := ((h << 5) - h) + x; then h := ((h << 5) - h) + y; both with
//     32-bit two's-complement wraparound.
//  3. For i from n-1 down to 1: h := (h*9301 + 49297) mod 233280;
//     j := h mod (i+1); swap a[i] and a[j].
//
// Every step uses a true (non-negative) mathematical modulo, not a
// remainder: the only reading under which step 3 yields valid array
// indices for every i. seed, x, and y are folded into a 32-bit signed
// accumulator exactly as step 2 specifies; h is then widened so the later
// multiply by 9301 cannot silently overflow before the mod is applied.
func deterministicShuffle(a []int, seed int32, x, y int32) {
	h := seed
	h = (h<<5 - h) + x
	h = (h<<5 - h) + y

	acc := int64(h)
	for i := len(a) - 1; i >= 1; i-- {
		acc = floorMod(acc*9301+49297, 233280)
		j := int(floorMod(acc, int64(i+1)))
		a[i], a[j] = a[j], a[i]
	}
}

func floorMod(a, m int64) int64 {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}
