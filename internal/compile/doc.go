// Package compile turns a type mapping into a routine converting one token
// record into a value of the mapped type.
//
// Two strategies produce behaviorally identical routines:
//
//   - [StrategyCompiled] binds every descriptor once to a setter writing at the
//     field's byte offset. A call is a loop over the bound setters.
//   - [StrategyInterpreted] walks the fields with reflection and looks the
//     converter up in the registry on every call.
//
// For each descriptor, in mapping order, a routine skips the field when the
// record is too short, assigns text tokens as they are and assigns other kinds
// only when the conversion succeeds. A failed conversion leaves the zero value.
package compile
