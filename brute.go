package kdindex

// BruteForceKNN ranks every point of a against q by a linear scan and returns
// the k closest by ascending distance. Ties go to the lower point index.
// It is the reference the tree search must agree with.
func BruteForceKNN[P Point[P, T], T Coord](a *Adaptor[P, T], q P, k int) []Neighbor[T] {
	n := a.Len()
	if k <= 0 || n == 0 {
		return nil
	}
	rs := NewKNNResultSet[T](min(k, n))
	for i := 0; i < n; i++ {
		if d := q.DistanceTo(a.at(i)); d <= rs.WorstDist() {
			rs.AddPoint(d, i)
		}
	}
	return rs.Neighbors()
}

// BruteForceRadius returns every point of a closer to q than radius, by
// ascending distance.
func BruteForceRadius[P Point[P, T], T Coord](a *Adaptor[P, T], q P, radius T) []Neighbor[T] {
	rs := NewRadiusResultSet(radius)
	for i, n := 0, a.Len(); i < n; i++ {
		rs.AddPoint(q.DistanceTo(a.at(i)), i)
	}
	return rs.Neighbors()
}
