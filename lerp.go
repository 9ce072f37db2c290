package parcoords

// === Interpolation =========================================================

// Lerp interpolates linearly between a and b:
//
//	lerp(a,b,t) = (1−t)⋅a + t⋅b
//
// t is not restricted to [0,1].
func Lerp(a, b, t float32) float32 {
	return (1-t)*a + t*b
}

// InvLerp is the inverse of Lerp: it returns t such that Lerp(a,b,t) = x.
//
//	inv_lerp(x,a,b) = (x−a) / (b−a)
//
// For a = b the result is ±Inf or NaN, as with any division by zero.
func InvLerp(x, a, b float32) float32 {
	return (x - a) / (b - a)
}

// Lerp2 interpolates pointwise between two pairs.
func Lerp2(a, b [2]float32, t float32) [2]float32 {
	return [2]float32{Lerp(a[0], b[0], t), Lerp(a[1], b[1], t)}
}

// Lerp3 interpolates pointwise between two triples.
func Lerp3(a, b [3]float32, t float32) [3]float32 {
	return [3]float32{Lerp(a[0], b[0], t), Lerp(a[1], b[1], t), Lerp(a[2], b[2], t)}
}

// Lerp4 interpolates pointwise between two quadruples, e.g. colors with alpha.
func Lerp4(a, b [4]float32, t float32) [4]float32 {
	return [4]float32{
		Lerp(a[0], b[0], t), Lerp(a[1], b[1], t),
		Lerp(a[2], b[2], t), Lerp(a[3], b[3], t),
	}
}

// InvLerp2 inverts Lerp2 component-wise.
func InvLerp2(x, a, b [2]float32) [2]float32 {
	return [2]float32{InvLerp(x[0], a[0], b[0]), InvLerp(x[1], a[1], b[1])}
}

// LerpRange maps t ∈ [0,1] into the interval r.
func LerpRange(r [2]float32, t float32) float32 {
	return Lerp(r[0], r[1], t)
}

// InvLerpRange maps x from the interval r into [0,1]-space. It traces an error
// for degenerate intervals and returns 0 in that case.
func InvLerpRange(x float32, r [2]float32) float32 {
	if r[0] == r[1] {
		tracer().Errorf("inverse lerp on degenerate range [%g,%g]", r[0], r[1])
		return 0
	}
	return InvLerp(x, r[0], r[1])
}
