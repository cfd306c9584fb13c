package bilinear

// Bilinear interpolation shared by both resample directions. For a
// destination position d along one axis, the source position is d*ratio;
// the two bracketing source samples and the fractional distance to the
// lower one drive the blend. The blend is separable: horizontal first,
// then vertical, with add-0.5-truncate rounding. Weights sum to 1 and
// inputs are in range, so no clamping is needed.

// interpParams returns the bracketing source indices and the fractional
// offset for one destination coordinate.
func interpParams(pos int, ratio float64, srcExtent int) (lo, hi int, frac float64) {
	srcPos := float64(pos) * ratio
	lo = int(srcPos)
	hi = lo + 1
	if hi > srcExtent-1 {
		hi = srcExtent - 1
	}
	frac = srcPos - float64(lo)

	return lo, hi, frac
}

// sample reads one channel of the pixel at (x, y) in a width-wide RGB
// buffer.
func sample(src []byte, width, y, x, ch int) float64 {
	return float64(src[(y*width+x)*3+ch])
}

// resample blends src (srcW x srcH RGB) into dst (dstW x dstH RGB) using
// the given per-axis ratios.
func resample(src, dst []byte, srcW, srcH, dstW, dstH int, xRatio, yRatio float64) {
	for y := 0; y < dstH; y++ {
		yLo, yHi, yFrac := interpParams(y, yRatio, srcH)
		for x := 0; x < dstW; x++ {
			xLo, xHi, xFrac := interpParams(x, xRatio, srcW)
			for ch := 0; ch < 3; ch++ {
				top := sample(src, srcW, yLo, xLo, ch)*(1-xFrac) + sample(src, srcW, yLo, xHi, ch)*xFrac
				bottom := sample(src, srcW, yHi, xLo, ch)*(1-xFrac) + sample(src, srcW, yHi, xHi, ch)*xFrac
				dst[(y*dstW+x)*3+ch] = byte(top*(1-yFrac) + bottom*yFrac + 0.5)
			}
		}
	}
}

// resampleDown shrinks src into dst. The ratio (S-1)/D reaches the full
// range of source pixels.
func resampleDown(src, dst []byte, srcW, srcH, dstW, dstH int) {
	xRatio := float64(srcW-1) / float64(dstW)
	yRatio := float64(srcH-1) / float64(dstH)
	resample(src, dst, srcW, srcH, dstW, dstH, xRatio, yRatio)
}

// resampleUp grows src into dst. The ratio (S-1)/(D-1) maps the first and
// last destination samples onto the first and last source samples. A
// single-sample destination axis degenerates to ratio 0.
func resampleUp(src, dst []byte, srcW, srcH, dstW, dstH int) {
	var xRatio, yRatio float64
	if dstW > 1 {
		xRatio = float64(srcW-1) / float64(dstW-1)
	}
	if dstH > 1 {
		yRatio = float64(srcH-1) / float64(dstH-1)
	}
	resample(src, dst, srcW, srcH, dstW, dstH, xRatio, yRatio)
}
