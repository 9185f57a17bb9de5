// Package chunking splits normalized document text into overlapping,
// fixed-size windows.
//
// Window i starts at character offset i*(size-overlap) and ends at
// start+size, clipped to the text length. Offsets count Unicode code points,
// not bytes. Windows that are empty after trimming are dropped, but the
// window index still advances so the offsets of the surviving chunks stay on
// the same arithmetic grid.
//
//	c, err := chunking.New(chunking.DefaultSize, chunking.DefaultOverlap)
//	if err != nil {
//	    return err // core.ErrInvalidConfig
//	}
//	chunks, strategy := c.Chunk(text, "report.pdf")
//	fmt.Println(strategy) // fixed-size-overlap(1000,100)
package chunking
