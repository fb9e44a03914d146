// Package domain models the earthquake catalog behind the dashboard and the
// figure descriptors derived from it.
//
// # Data Source
//
// The dataset is a CSV snapshot of global earthquake observations with at
// least the columns Date, Latitude, Longitude and Magnitude. It is loaded once
// at startup and never changes for the life of the process.
//
// # Magnitude Bands
//
// Every event is classified into a band by [Classify], using closed lower
// bounds checked from the highest threshold down:
//
//	>= 8     ">8"
//	>= 7     "7-8"
//	>= 6     "6-7"
//	>= 5     "5-6"
//	else     "<5"
//
// The "<5" band is assigned but never offered as a selectable facet.
//
// # Dates
//
// Dates are parsed by [ParseDate]. Rows whose date cannot be parsed are kept
// with a zero Year and Month. Month selections only admit 1-12, so those rows
// never appear in a filtered result.
//
// # Figures
//
// [Update] turns a [Selection] into a map descriptor (one [Layer] per band,
// bands in plain string order) and a yearly bar descriptor. If any selection
// axis is empty both descriptors take their empty form without scanning the
// dataset.
package domain
