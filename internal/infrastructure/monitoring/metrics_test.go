package monitoring

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	counter := HTTP.RequestsTotal.WithLabelValues("GET", "/api/customers", "200")
	before := testutil.ToFloat64(counter)

	RecordHTTPRequest("GET", "/api/customers", 200, 5*time.Millisecond)
	RecordHTTPRequest("GET", "/api/customers", 200, 8*time.Millisecond)

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
	assert.GreaterOrEqual(t, testutil.CollectAndCount(HTTP.RequestDuration), 1)
}

func TestRecordImportRows(t *testing.T) {
	imported := Import.RowsImportedTotal.WithLabelValues("customer")
	failed := Import.RowErrorsTotal.WithLabelValues("customer")
	importedBefore := testutil.ToFloat64(imported)
	failedBefore := testutil.ToFloat64(failed)

	RecordImportRows("customer", 3, 2)

	assert.Equal(t, importedBefore+3, testutil.ToFloat64(imported))
	assert.Equal(t, failedBefore+2, testutil.ToFloat64(failed))
}

func TestRecordImportRows_ZeroCountsLeaveCountersUntouched(t *testing.T) {
	imported := Import.RowsImportedTotal.WithLabelValues("vehicle")
	failed := Import.RowErrorsTotal.WithLabelValues("vehicle")
	importedBefore := testutil.ToFloat64(imported)
	failedBefore := testutil.ToFloat64(failed)

	RecordImportRows("vehicle", 0, 0)

	assert.Equal(t, importedBefore, testutil.ToFloat64(imported))
	assert.Equal(t, failedBefore, testutil.ToFloat64(failed))
}

func TestObserveImportDuration(t *testing.T) {
	ObserveImportDuration("customer", 120*time.Millisecond)

	assert.GreaterOrEqual(t, testutil.CollectAndCount(Import.ImportDuration), 1)
}
