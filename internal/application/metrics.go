package application

import "expvar"

// Counters are published under the "classes" expvar map.
var classMetrics = expvar.NewMap("classes")

func countEvent(name string) {
	classMetrics.Add(name, 1)
}
