// Package units implements the WeeWX-compatible unit model used by the
// bridge: unit systems, observation unit groups, standard units per
// system, and packet conversion between systems.
//
// The package mirrors the semantics of WeeWX's units module for the
// subset of observation types a weather station emits. It is consumed
// by the measurement core through narrow interfaces so that tests can
// substitute fakes.
//
// # Unit Systems
//
// WeeWX identifies a unit system by an integer code carried in every
// loop packet under the "usUnits" key:
//
//	US       = 0x01  (imperial)
//	METRIC   = 0x10  (metric, km/h wind, cm rain)
//	METRICWX = 0x11  (metric, m/s wind, mm rain)
//
// # Usage
//
//	converted, err := units.ConvertPacket(packet, units.MetricWX)
//	unit, group := units.StandardUnit(units.MetricWX, "outTemp")
//	// unit == "degree_C", group == "group_temperature"
package units
