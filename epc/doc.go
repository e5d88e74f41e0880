/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package epc holds the GS1 primitives shared by the element string decoder:
// the AI encodable character sets, URI percent-escaping, the mod-10 check
// digit, and the SGTIN pure identity URI built from a GTIN and serial.
//
// The following are links to the GS1 General Specifications and the EPC Tag
// Data Standard; this code follows their definitions.
// - https://www.gs1.org/sites/default/files/docs/barcodes/GS1_General_Specifications.pdf
// - https://www.gs1.org/sites/default/files/docs/epc/GS1_EPC_TDS_i1_12.pdf
//
// Most significant in GS1's recommendations is the following idea:
//
//	"The canonical representation of an EPC is the pure-identity URI
//	representation, which is intended for communicating and storing EPCs in
//	information systems, databases and applications, in order to insulate
//	them from knowledge about the physical nature of the tag."
//	    - GS1 EPCglobal Tag Data Translation (TDT) 1.6
//
// A scanned GS1-128 or DataMatrix carrying AI (01) and AI (21) identifies the
// same object as an RFID tag encoding the same SGTIN, so converting both to the
// pure identity URI lets applications compare them without caring which
// carrier the data came from.
//
// A GTIN alone doesn't reveal its company prefix length; that is assigned by
// GS1 member organisations, so callers building an SGTIN must supply it.
package epc
