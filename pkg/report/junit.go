package report

import (
	"fmt"
	"io"

	"github.com/beevik/etree"

	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/errors"
	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/types"
)

// WriteJUnit serializes a run summary as JUnit-style XML, one testcase
// per plan entry. Failed entries become <failure> elements carrying the
// error code, already-correct entries become <skipped>, and degraded
// copies note the caveat in <system-out>. CI systems ingest the result
// like any other test report.
func WriteJUnit(w io.Writer, summary *types.ExecutionSummary, suite string) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	suites := doc.CreateElement("testsuites")
	ts := suites.CreateElement("testsuite")
	ts.CreateAttr("name", suite)
	ts.CreateAttr("tests", fmt.Sprintf("%d", len(summary.Outcomes)))
	ts.CreateAttr("failures", fmt.Sprintf("%d", summary.Failed()))
	ts.CreateAttr("skipped", fmt.Sprintf("%d", summary.AlreadyLinked()))
	ts.CreateAttr("time", fmt.Sprintf("%.3f", summary.Duration.Seconds()))

	for _, outcome := range summary.Outcomes {
		tc := ts.CreateElement("testcase")
		tc.CreateAttr("name", outcome.Entry.Dest)
		tc.CreateAttr("classname", string(outcome.Strategy))

		switch outcome.Status {
		case types.StatusFailed:
			failure := tc.CreateElement("failure")
			failure.CreateAttr("type", string(errors.GetErrorCode(outcome.Err)))
			failure.CreateAttr("message", outcome.Message)

		case types.StatusAlreadyLinked:
			tc.CreateElement("skipped")

		default:
			if outcome.Message != "" {
				out := tc.CreateElement("system-out")
				out.SetText(outcome.Message)
			}
		}
	}

	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return errors.Wrap(err, errors.ErrReportWrite, "writing JUnit report")
	}
	return nil
}
