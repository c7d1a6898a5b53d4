package parser

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/quality-tools/qreport/internal/quality"
)

// JUnit XML schema, covering both a bare <testsuite> root and the
// <testsuites> wrapper emitted by newer runners.

type junitDetail struct {
	Message string `xml:"message,attr"`
	Text    string `xml:",chardata"`
}

type junitTestCase struct {
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	File      string        `xml:"file,attr"`
	Time      string        `xml:"time,attr"`
	Failures  []junitDetail `xml:"failure"`
	Errors    []junitDetail `xml:"error"`
	Skipped   *junitDetail  `xml:"skipped"`
}

type junitTestSuite struct {
	XMLName   xml.Name        `xml:"testsuite"`
	Name      string          `xml:"name,attr"`
	TestCases []junitTestCase `xml:"testcase"`
}

type junitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	TestSuites []junitTestSuite `xml:"testsuite"`
}

// ParseJUnit reads a JUnit test-results file into normalized outcomes.
// Counts are always derived from the cases, never taken from the suite
// attributes.
func ParseJUnit(path string) ([]quality.TestOutcome, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}
	suites, err := unmarshalJUnit(path, data)
	if err != nil {
		return nil, err
	}

	var outcomes []quality.TestOutcome
	for _, suite := range suites {
		for _, tc := range suite.TestCases {
			outcome := quality.TestOutcome{
				Name:     testCaseID(tc),
				Status:   quality.TestStatusPassed,
				Duration: parseJUnitTime(tc.Time),
			}
			switch {
			case tc.Skipped != nil:
				outcome.Status = quality.TestStatusSkipped
				outcome.Message = strings.TrimSpace(tc.Skipped.Message)
			case len(tc.Errors) > 0:
				outcome.Status = quality.TestStatusErrored
				outcome.Message = detailMessage(tc.Errors[0])
			case len(tc.Failures) > 0:
				outcome.Status = quality.TestStatusFailed
				outcome.Message = detailMessage(tc.Failures[0])
			}
			outcomes = append(outcomes, outcome)
		}
	}
	return outcomes, nil
}

func unmarshalJUnit(path string, data []byte) ([]junitTestSuite, error) {
	suite := junitTestSuite{}
	if err := xml.Unmarshal(data, &suite); err == nil {
		return []junitTestSuite{suite}, nil
	} else if !strings.Contains(err.Error(), "<testsuites>") {
		return nil, parseErrorf(path, "expected a JUnit document: %v", err)
	}
	wrapper := junitTestSuites{}
	if err := xml.Unmarshal(data, &wrapper); err != nil {
		return nil, parseErrorf(path, "expected a JUnit testsuites document: %v", err)
	}
	return wrapper.TestSuites, nil
}

// testCaseID builds the reported test identifier, preferring the file
// attribute over the classname, matching pytest node IDs.
func testCaseID(tc junitTestCase) string {
	switch {
	case tc.File != "":
		return fmt.Sprintf("%s::%s", tc.File, tc.Name)
	case tc.ClassName != "":
		return fmt.Sprintf("%s::%s", tc.ClassName, tc.Name)
	}
	return tc.Name
}

func detailMessage(d junitDetail) string {
	if msg := strings.TrimSpace(d.Message); msg != "" {
		return msg
	}
	return strings.TrimSpace(d.Text)
}

func parseJUnitTime(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return time.Duration(seconds * float64(time.Second))
}
