// Package module describes what the panel shows.
//
// A Registry is an immutable, ordered table of Descriptors: header buttons,
// sliders and rows of one or two modules. Descriptors are pure data. Every
// dynamic part (an icon that depends on the uplink, a subtitle naming the
// active profile, the device list under Bluetooth) is a reference by name
// to a resolver in a Resolvers set. Resolvers are functions of a
// state.Snapshot, so building the registry performs no queries and tests
// can swap the whole capability set for stubs.
package module
