// Package schema turns JSON Schema and OpenAPI documents into the field specs
// forms are built from.
//
// Property kinds map onto registry type identifiers: enums become "enum",
// string formats date and date-time become "date" and "datetime", numbers
// become "integer". The x-formkit extension overrides the type and supplies
// the widget, label, ordering, attributes, messages and mustBeTrue flag:
//
//	properties:
//	  agree:
//	    type: boolean
//	    x-formkit:
//	      mustBeTrue: true
//	      widget: checkbox
//	      order: 10
package schema
