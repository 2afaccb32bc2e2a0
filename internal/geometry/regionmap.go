package geometry

// BuildRegionMap labels connected groups of Floor cells. Any boundary that is
// not a Wall connects, whatever the state of a door on it, so two cells in
// different regions can never be joined by a door transition. Non-Floor
// cells get region -1.
func BuildRegionMap(g *Graph) RegionMap {
	w := g.Width()
	h := g.Height()
	total := w * h
	tileRegionIDs := make([]int, total)
	for i := range tileRegionIDs {
		tileRegionIDs[i] = -1
	}

	regionID := 0
	qx := make([]int, 0, total)
	qy := make([]int, 0, total)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if tileRegionIDs[idx] != -1 || g.CellType(x, y) != CellFloor {
				continue
			}
			tileRegionIDs[idx] = regionID
			qx = qx[:0]
			qy = qy[:0]
			qx = append(qx, x)
			qy = append(qy, y)

			for len(qx) > 0 {
				cx := qx[0]
				cy := qy[0]
				qx = qx[1:]
				qy = qy[1:]

				for dir := North; dir <= West; dir++ {
					b := g.Edge(cx, cy, dir)
					if b == nil || (b.Type == BoundaryWall && !b.IsDoor()) {
						continue
					}
					off := dir.Offset()
					nx, ny := cx+off.X, cy+off.Y
					if g.CellType(nx, ny) != CellFloor {
						continue
					}
					nidx := ny*w + nx
					if tileRegionIDs[nidx] == -1 {
						tileRegionIDs[nidx] = regionID
						qx = append(qx, nx)
						qy = append(qy, ny)
					}
				}
			}
			regionID++
		}
	}

	return RegionMap{TileRegionIDs: tileRegionIDs, RegionsCount: regionID}
}

// RegionAt returns the region of cell (x,y), or -1.
func (rm RegionMap) RegionAt(g *Graph, x, y int) int {
	if !g.InBounds(x, y) {
		return -1
	}
	return rm.TileRegionIDs[y*g.Width()+x]
}
