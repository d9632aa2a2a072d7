package convolution

import "sync"

// Serialized returns an XFX that holds mu for the duration of every call to
// xfx.
func Serialized(xfx XFX, mu *sync.Mutex) XFX {
	return func(pid int32, x, q2 float64) float64 {
		mu.Lock()
		defer mu.Unlock()

		return xfx(pid, x, q2)
	}
}

// SerializedAlphaS is Serialized for an AlphaS callback.
func SerializedAlphaS(alphas AlphaS, mu *sync.Mutex) AlphaS {
	return func(q2 float64) float64 {
		mu.Lock()
		defer mu.Unlock()

		return alphas(q2)
	}
}
