// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime introspection for persistbuf: debug probes over pool and tracker
// state, a metrics registry for harness measurements, and platform probes.
package control
