package report

// Merge concatenates per-file row slices into one dataset, preserving input
// file order and each row's source tag. No reordering, no deduplication.
//
// Merge never errors: the zero-files case is rejected earlier, at the
// discovery boundary, and an empty concatenation of all-empty per-file
// results is a valid (degenerate) dataset.
func Merge(perFile [][]Row) Dataset {
	var n int
	for _, rows := range perFile {
		n += len(rows)
	}
	ds := make(Dataset, 0, n)
	for _, rows := range perFile {
		ds = append(ds, rows...)
	}
	return ds
}
