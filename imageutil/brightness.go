package imageutil

import (
	"runtime"
	"sync"
)

// Rec. 709 luma weights scaled by 10000 so that sums stay exact integers.
// The weights add up to lumaScale, which makes a white buffer score
// exactly 1.
const (
	lumaRed   = 2126
	lumaGreen = 7152
	lumaBlue  = 722
	lumaScale = lumaRed + lumaGreen + lumaBlue
)

// Luminance returns the weighted luminance of c in [0, 255]:
// 0.2126*R + 0.7152*G + 0.0722*B.
func Luminance(c RGB) float64 {
	return float64(weightedLuma(c)) / lumaScale
}

func weightedLuma(c RGB) int64 {
	return lumaRed*int64(c.R) + lumaGreen*int64(c.G) + lumaBlue*int64(c.B)
}

// Brightness returns the mean luminance of buf divided by 255, a value in
// [0, 1]. All-black buffers score 0 and all-white buffers score 1.
func Brightness(buf *PixelBuffer) float64 {
	if len(buf.pix) == 0 {
		return 0
	}
	var sum int64
	for _, c := range buf.pix {
		sum += weightedLuma(c)
	}
	return float64(sum) / (float64(len(buf.pix)) * 255 * lumaScale)
}

// TileBrightness scores every tile of a grid. When parallel is set, rows
// are scored on up to GOMAXPROCS goroutines; the result is the same as the
// serial path since tiles are read-only.
func TileBrightness(tiles [][]*PixelBuffer, parallel bool) [][]float64 {
	scores := make([][]float64, len(tiles))
	for r := range tiles {
		scores[r] = make([]float64, len(tiles[r]))
	}

	scoreRow := func(r int) {
		for c, tile := range tiles[r] {
			scores[r][c] = Brightness(tile)
		}
	}

	if !parallel || len(tiles) < 2 {
		for r := range tiles {
			scoreRow(r)
		}
		return scores
	}

	workers := min(runtime.GOMAXPROCS(0), len(tiles))
	rows := make(chan int)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := range rows {
				scoreRow(r)
			}
		}()
	}
	for r := range tiles {
		rows <- r
	}
	close(rows)
	wg.Wait()
	return scores
}
