// Package yamldump is the YAML implementation of config.DumpFormat.
//
//	radio: FT-60
//	sections:
//	  - name: Settings
//	    kind: tab
//	    fields:
//	      Beep: 1
//	      Owner: "W1AW  "
//	  - name: Memories
//	    kind: list
//	    rows:
//	      - index: 0
//	        fields:
//	          Freq: "146.520"
//
// Field maps keep the order of the schema.
package yamldump
