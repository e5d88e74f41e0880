/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package epc

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

const (
	SGTINPureURIPrefix = "urn:epc:id:sgtin"
	GTINLength         = 14

	minCompanyPrefixLen = 6
	maxCompanyPrefixLen = 12
	maxSerialLen        = 20
	sgtin96SerialBits   = 38
)

// SGTIN does not directly correspond to a GS1 identifier, but instead is a
// combination of a GS1 GTIN (global trade identification number) and a serial
// "number" to identify the specific instance of that GTIN. In an element
// string, those are carried by AI (01) and AI (21).
//
// Although the serial value is frequently referenced as a serial "number", the
// GS1 General Specifications permits _alphanumeric_ serial numbers, not just
// the digits 0-9. Moreover, it specifies that those serial *must* be treated
// as a string, wherein two serials are distinct if their string comparisons are
// distinct, including leading '0's. In other words, '0', '07', '007' are all
// valid, distinct serial numbers.
//
// The GTIN itself doesn't say where the GS1 Company Prefix ends and the item
// reference begins; that length is assigned by GS1 member organisations and
// must be supplied by the caller. The EPC partition value follows from it.
type SGTIN struct {
	partition int

	companyPrefix int
	indicator     int
	itemRef       int
	serial        string
}

func (s *SGTIN) Serial() string {
	return s.serial
}

func (s *SGTIN) Partition() int {
	return s.partition
}

func (s *SGTIN) CompanyPrefix() string {
	return fmt.Sprintf("%0[1]*d", 12-s.partition, s.companyPrefix)
}

func (s *SGTIN) ItemReference() string {
	return fmt.Sprintf("%0[1]*d", s.partition, s.itemRef)
}

// NewSGTINFromAI splits a GTIN-14, as decoded from AI (01), into its indicator,
// company prefix and item reference, and pairs it with the serial decoded from
// AI (21).
//
// The GTIN must be 14 digits with a correct check digit, and companyPrefixLen
// must be in [6, 12]. The resulting SGTIN is range-validated before it's
// returned.
func NewSGTINFromAI(gtin, serial string, companyPrefixLen int) (SGTIN, error) {
	if err := ValidateGTIN(gtin); err != nil {
		return SGTIN{}, err
	}
	if companyPrefixLen < minCompanyPrefixLen || companyPrefixLen > maxCompanyPrefixLen {
		return SGTIN{}, errors.Errorf("company prefix length must be in [%d,%d], "+
			"but is %d", minCompanyPrefixLen, maxCompanyPrefixLen, companyPrefixLen)
	}

	// GTIN-14 = indicator | company prefix | item ref | check digit
	indicator := int(gtin[0] - '0')
	companyPrefix, err := strconv.Atoi(gtin[1 : 1+companyPrefixLen])
	if err != nil {
		return SGTIN{}, errors.Wrap(err, "company prefix is not numeric")
	}
	itemRef := 0
	if companyPrefixLen < maxCompanyPrefixLen {
		itemRef, err = strconv.Atoi(gtin[1+companyPrefixLen : GTINLength-1])
		if err != nil {
			return SGTIN{}, errors.Wrap(err, "item reference is not numeric")
		}
	}

	s := SGTIN{
		partition:     maxCompanyPrefixLen - companyPrefixLen,
		indicator:     indicator,
		companyPrefix: companyPrefix,
		itemRef:       itemRef,
		serial:        serial,
	}
	return s, s.ValidateRanges()
}

// ValidateRanges checks an SGTIN's values to ensure they fit the range
// restrictions of their respective fields.
//
// Note that GS1 and EPCGlobal standards restrict many potential values that
// would otherwise fit within their relevant fields (for example, RCNs with GS1
// Prefix '02' are not valid GTINs and should not be encoded to SGTIN); this
// method only validates that they fit within the available ranges, but not that
// they are otherwise legal.
func (s SGTIN) ValidateRanges() error {
	if s.indicator < 0 || s.indicator > 9 {
		return errors.Errorf("indicator must be in [0,9], but is %d", s.indicator)
	}
	if s.partition < 0 || s.partition > 6 {
		return errors.Errorf("partition must be in [0,6], but is %d", s.partition)
	}
	if s.itemRef < 0 || s.itemRef > maxItems[s.partition]-1 {
		return errors.Errorf("item refs in partition %d must be in [0, %d], "+
			"but is %d", s.partition, maxItems[s.partition]-1, s.itemRef)
	}
	if s.companyPrefix < 0 || s.companyPrefix > maxPrefix[s.partition] {
		return errors.Errorf("company prefix in partition %d must be in [0, %d], "+
			"but is %d", s.partition, maxPrefix[s.partition], s.companyPrefix)
	}
	if s.serial == "" {
		return errors.New("serial is empty")
	}
	if len(s.serial) > maxSerialLen {
		return errors.Errorf("SGTIN serial numbers are limited to at most "+
			"%d characters, but this serial has %d characters", maxSerialLen, len(s.serial))
	}
	if !IsGS1AIEncodable(s.serial) {
		return errors.Errorf("SGTIN serial numbers may only contain ASCII "+
			"characters in the GS1 AI Encodable Character Set 82, but this "+
			"serial is %q, which has illegal characters", s.serial)
	}
	return nil
}

// CanSGTIN96 returns nil if the serial fits the SGTIN-96 binary encoding,
// which stores it as a 38 bit integer: digits only, less than 2^38, and no
// leading '0' unless the serial is exactly "0".
func (s SGTIN) CanSGTIN96() error {
	switch {
	case !IsNumeric(s.serial):
		return errors.Errorf("SGTIN-96 serial %q must be all digits", s.serial)
	case len(s.serial) > 1 && s.serial[0] == '0':
		return errors.Errorf("SGTIN-96 serial %q has a leading '0'", s.serial)
	}
	if _, err := strconv.ParseUint(s.serial, 10, sgtin96SerialBits); err != nil {
		return errors.Wrapf(err, "SGTIN-96 serial %q is out of range", s.serial)
	}
	return nil
}

// GTIN returns the GS1 GTIN element string represented by this SGTIN.
func (s SGTIN) GTIN() string {
	if s.partition == 0 {
		// no item reference
		return fmt.Sprintf("%d%012d%d",
			s.indicator,
			s.companyPrefix,
			s.checkDigit())
	}
	return fmt.Sprintf("%d%0[2]*d%0[4]*d%d",
		s.indicator,
		12-s.partition, s.companyPrefix,
		s.partition, s.itemRef,
		s.checkDigit())
}

// URI returns the EPC Pure Identity URI for this SGTIN, of the format:
//
//	urn:epc:id:sgtin:CompanyPrefix.ItemRefAndIndicator.SerialNumber
//
// The serial number is escaped, if necessary, to conform with GS1 specs, but
// it is not validated.
func (s SGTIN) URI() string {
	if s.partition == 0 {
		// no item reference; just indicator
		return fmt.Sprintf("%s:%0[2]*d.%d.%s",
			SGTINPureURIPrefix,
			12-s.partition, s.companyPrefix,
			s.indicator,
			gs1Escaper.Replace(s.serial))
	}
	return fmt.Sprintf("%s:%0[2]*d.%d%0[5]*d.%s",
		SGTINPureURIPrefix,
		12-s.partition, s.companyPrefix,
		s.indicator, s.partition, s.itemRef,
		gs1Escaper.Replace(s.serial))
}

// CheckDigit returns the GS1 check digit for the digits in data, which should
// not include a check digit of its own. It works for GTIN-8/12/13/14, SSCC and
// any other GS1 key using the mod-10 algorithm.
func CheckDigit(data string) (int, error) {
	if !IsNumeric(data) {
		return 0, errors.Errorf("check digit input %q must be numeric", data)
	}
	sum := 0
	for i := len(data) - 1; i >= 0; i-- {
		sum += checkSum(int(data[i]-'0'), len(data)-i)
	}
	return (10 - (sum % 10)) % 10, nil
}

// ValidateGTIN returns nil if gtin is a 14 digit GTIN with a correct check
// digit. Shorter GTINs must be zero-padded to 14 digits, as they are inside
// AI (01) and AI (02).
func ValidateGTIN(gtin string) error {
	if len(gtin) != GTINLength || !IsNumeric(gtin) {
		return errors.Errorf("GTIN must be %d digits, but is %q", GTINLength, gtin)
	}
	cd, err := CheckDigit(gtin[:GTINLength-1])
	if err != nil {
		return err
	}
	if got := int(gtin[GTINLength-1] - '0'); got != cd {
		return errors.Errorf("GTIN %s has check digit %d, but it should be %d",
			gtin, got, cd)
	}
	return nil
}

// checkSum returns the portion of the GS1 check sum that n contributes, given
// that n's lowest digit is in position d1.
//
// This function allows calculating the checksum of a number in pieces, from
// which the check digit is equal to ((10 - sum(parts)%10) % 10).
//
// d1 is 1-indexed position of the smallest digit of n. That is, d1 is where the
// "ones place" of n lies within the number containing it, as counted from the
// "ones place" of that number. Do not include the final check digit.
//
// Example: if you wanted the check digit C of 01234C, and had the value stored
//
//	in three parts: 01 | 234 | C, you could use the function to get the
//	checkSum of the first two parts by considering the "total" number as
//	"01234", in which "234"'s 1's place is at d1=1 and "01"'s d1=4. Then
//	the sum = checkSum(234, 1) + checkSum(1, 4), and C=((10-sum%10)%10).
func checkSum(n, d1 int) (sum int) {
	for i := 0; n > 0; i++ {
		sum += (n % 10) * ((((d1 - i) & 1) << 1) | 1)
		n /= 10
	}
	return
}

// checkDigit returns the GS1 check digit of the underlying GTIN value
func (s SGTIN) checkDigit() int {
	sum := checkSum(s.itemRef, 1) +
		checkSum(s.companyPrefix, 13-s.partition) +
		checkSum(s.indicator, 13)

	// mod 10 additive inverse
	return (10 - (sum % 10)) % 10
}

var (
	// max number of item references that each partition allows = (10^partition)
	// note: partition 0 doesn't really allow any items, as the company prefix
	// takes the entire field. it can be thought of as a single item, though
	maxItems = [7]int{
		1,
		10,
		100,
		1000,
		10000,
		100000,
		1000000,
	}

	// max value for company prefix each partition allows
	// note: many are forbidden by GS1 rules
	maxPrefix = [7]int{
		999999999999,
		99999999999,
		9999999999,
		999999999,
		99999999,
		9999999,
		999999,
	}
)
