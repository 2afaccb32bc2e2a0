package geometry

// RegionsAcrossBoundary returns the regions of the two cells b separates.
// Off-grid sides report -1.
func RegionsAcrossBoundary(regionMap RegionMap, g *Graph, b *Boundary) (int, int) {
	if b == nil {
		return -1, -1
	}
	return regionMap.RegionAt(g, b.X1, b.Y1), regionMap.RegionAt(g, b.X2, b.Y2)
}
