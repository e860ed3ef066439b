// Package metrics provides observability hooks for chained hash sets.
//
// The package follows the Null Object pattern: every component that can report
// metrics holds a Recorder, and NoopRecorder is the default so call sites never
// check for nil.
//
//	s, err := hashset.New[hashset.String](
//	    hashset.WithName("sessions"),
//	    hashset.WithRecorder(metrics.NewPrometheusRecorder(reg)),
//	)
//
// PrometheusRecorder registers its collectors on the registry it is given and
// labels every series with the set name, so one recorder can serve many sets.
// HTTPHandler exposes a registry for scraping.
package metrics
