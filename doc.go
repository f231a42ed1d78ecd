// Package rrecur implements the RFC 5545 §3.3.10 RRULE recurrence
// expansion engine: given a recurrence rule and a start date-time, it
// produces the lazy, ordered sequence of occurrence date-times the rule
// generates.
//
// The package is deliberately narrow. It does not parse iCalendar
// documents, does not resolve timezone name aliases, and does not compose
// RRULE with RDATE/EXDATE or overriding VEVENT instances — callers get a
// raw RRULE stream and build the rest on top, the same split
// cyp0633/libcaldora draws between its ical layer and its
// server/recurrence engine.
//
// Typical usage:
//
//	it, err := rrecur.NewIterator("FREQ=DAILY;COUNT=5", start)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for {
//		t, ok := it.Current()
//		if !ok {
//			break
//		}
//		fmt.Println(t)
//		if err := it.Advance(); err != nil {
//			log.Fatal(err)
//		}
//	}
package rrecur
