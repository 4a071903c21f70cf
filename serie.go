package charts

// Serie is the subset of records sharing the same series label.
type Serie struct {
	Title   string
	Records []Record
}

// Split groups records by series label. Series come in the order their first
// record appears; records keep their relative order.
func Split(list []Record) []Serie {
	var (
		series []Serie
		index  = make(map[string]int)
	)
	for _, r := range list {
		ix, ok := index[r.Series]
		if !ok {
			ix = len(series)
			index[r.Series] = ix
			series = append(series, Serie{Title: r.Series})
		}
		series[ix].Records = append(series[ix].Records, r)
	}
	return series
}
