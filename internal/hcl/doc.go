// Package hcl provides the concrete HCL implementation for the interfaces
// defined in the `config` package: the settings file loader and the HCL
// dump format.
//
// A dump looks like this:
//
//	radio = "FT-60"
//
//	tab "Settings" {
//	  Beep  = 1
//	  Owner = "W1AW  "
//	}
//
//	list "Memories" {
//	  row "0" {
//	    Freq  = "146.520"
//	    Power = "Low"
//	  }
//	}
//
// Raw integer fields are numbers, everything else is a string. A field whose
// name is not an HCL identifier is written as `field "<name>" { value = ... }`.
package hcl
