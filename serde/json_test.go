package serde

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math/big"
	"net/http"
	"testing"

	"github.com/aws/smithy-go"
	smithytesting "github.com/aws/smithy-go/testing"
	"github.com/google/go-cmp/cmp"
)

func TestEncodeJSONDocument(t *testing.T) {
	doc := map[string]interface{}{
		"name":  "Seattle",
		"count": int32(3),
		"ratio": float64(0.5),
		"ok":    true,
		"data":  []byte("hi"),
		"big":   big.NewInt(12345678901234),
		"tags":  []interface{}{"a", "b"},
		"nested": map[string]interface{}{
			"latitude":  float32(47.5),
			"longitude": float32(-122.25),
		},
		"missing": nil,
	}
	actual, err := EncodeJSONDocument(doc)
	if err != nil {
		t.Fatal(err)
	}
	expect := []byte(`{
		"big": 12345678901234,
		"count": 3,
		"data": "aGk=",
		"missing": null,
		"name": "Seattle",
		"nested": {"latitude": 47.5, "longitude": -122.25},
		"ok": true,
		"ratio": 0.5,
		"tags": ["a", "b"]
	}`)
	smithytesting.AssertJSONEqual(t, expect, actual)
}

func TestEncodeJSONDocumentRejectsUnknownTypes(t *testing.T) {
	_, err := EncodeJSONDocument(map[string]interface{}{"c": make(chan int)})
	var se *smithy.SerializationError
	if !errors.As(err, &se) {
		t.Fatalf("expect serialization error, got %v", err)
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	raw, err := EncodeJSONDocument(map[string]interface{}{
		"name":     "Seattle",
		"high":     int32(18),
		"chance":   float32(0.25),
		"days":     []interface{}{map[string]interface{}{"day": "Mon"}},
		"snapshot": []byte{1, 2, 3},
	})
	if err != nil {
		t.Fatal(err)
	}
	tree, err := ParseJSONBytes(raw)
	if err != nil {
		t.Fatal(err)
	}
	obj, err := ExpectObject(tree)
	if err != nil {
		t.Fatal(err)
	}
	name, err := ExpectString(obj["name"])
	if err != nil || name != "Seattle" {
		t.Errorf("name: %q %v", name, err)
	}
	high, err := ExpectInt32(obj["high"])
	if err != nil || high != 18 {
		t.Errorf("high: %d %v", high, err)
	}
	chance, err := ExpectFloat32(obj["chance"])
	if err != nil || chance != 0.25 {
		t.Errorf("chance: %v %v", chance, err)
	}
	days, err := ExpectList(obj["days"])
	if err != nil || len(days) != 1 {
		t.Fatalf("days: %v %v", days, err)
	}
	snapshot, err := ExpectBlob(obj["snapshot"])
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]byte{1, 2, 3}, snapshot); diff != "" {
		t.Errorf("snapshot mismatch:\n%s", diff)
	}
	reencoded, err := EncodeJSONDocument(tree)
	if err != nil {
		t.Fatal(err)
	}
	smithytesting.AssertJSONEqual(t, raw, reencoded)
}

func TestParseJSONBytes(t *testing.T) {
	v, err := ParseJSONBytes([]byte("  "))
	if err != nil || v != nil {
		t.Errorf("expect nil document for empty body, got %v %v", v, err)
	}
	_, err = ParseJSONBytes([]byte("{not json"))
	var de *smithy.DeserializationError
	if !errors.As(err, &de) {
		t.Fatalf("expect deserialization error, got %v", err)
	}
	if string(de.Snapshot) != "{not json" {
		t.Errorf("expect snapshot of body, got %q", de.Snapshot)
	}
}

func TestExpectTypeErrors(t *testing.T) {
	if _, err := ExpectString(float64(1)); err == nil {
		t.Errorf("expect string type error")
	}
	if _, err := ExpectInt8(json.Number("300")); err == nil {
		t.Errorf("expect range error")
	}
	if _, err := ExpectObject([]interface{}{}); err == nil {
		t.Errorf("expect object type error")
	}
	if f, err := ExpectFloat64("Infinity"); err != nil || f <= 0 {
		t.Errorf("expect +Inf, got %v %v", f, err)
	}
}

func TestExpectTimestamp(t *testing.T) {
	epoch, err := ExpectTimestamp(json.Number("1680350400"), EpochSeconds)
	if err != nil {
		t.Fatal(err)
	}
	dateTime, err := ExpectTimestamp("2023-04-01T12:00:00Z", DateTime)
	if err != nil {
		t.Fatal(err)
	}
	httpDate, err := ExpectTimestamp("Sat, 01 Apr 2023 12:00:00 GMT", HTTPDate)
	if err != nil {
		t.Fatal(err)
	}
	if !epoch.Equal(dateTime) || !epoch.Equal(httpDate) {
		t.Errorf("timestamps differ: %v %v %v", epoch, dateTime, httpDate)
	}
}

func TestUnknownErrorCarriesCodeAndBody(t *testing.T) {
	body := []byte(`{"message":"something odd"}`)
	doc, err := ParseJSONBytes(body)
	if err != nil {
		t.Fatal(err)
	}
	resp := &ErrorResponse{
		Response: &Response{StatusCode: 418, Header: http.Header{"X-Amzn-Requestid": []string{"req-1"}}, Body: io.NopCloser(bytes.NewReader(nil))},
		Raw:      body,
		Document: doc,
	}
	e := NewUnknownError("WeirdError", resp)
	var apiErr smithy.APIError
	if !errors.As(error(e), &apiErr) {
		t.Fatalf("expect smithy.APIError")
	}
	if apiErr.ErrorCode() != "WeirdError" {
		t.Errorf("unexpected code %q", apiErr.ErrorCode())
	}
	if apiErr.ErrorMessage() != "something odd" {
		t.Errorf("unexpected message %q", apiErr.ErrorMessage())
	}
	if apiErr.ErrorFault() != smithy.FaultClient {
		t.Errorf("unexpected fault %v", apiErr.ErrorFault())
	}
	if string(e.Body) != string(body) || e.Metadata.RequestID != "req-1" || e.Metadata.HTTPStatusCode != 418 {
		t.Errorf("unexpected error contents %+v", e)
	}
}

func TestUnknownErrorFallsBackToBodyCode(t *testing.T) {
	doc, _ := ParseJSONBytes([]byte(`{"Code":"Throttled"}`))
	e := NewUnknownError("", &ErrorResponse{Response: &Response{StatusCode: 503}, Document: doc})
	if e.Code != "Throttled" || e.Message != "Throttled" || e.Fault != smithy.FaultServer {
		t.Errorf("unexpected error %+v", e)
	}
}

func TestSanitizeErrorCode(t *testing.T) {
	cases := map[string]string{
		"FooError":                             "FooError",
		"FooError:http://internal.amazon.com/": "FooError",
		"aws.protocoltests.restjson#FooError":  "FooError",
		"aws.protocoltests.restjson#FooError:http://internal.amazon.com/": "FooError",
		"": "",
	}
	for in, expect := range cases {
		if actual := SanitizeErrorCode(in); actual != expect {
			t.Errorf("%q: expect %q, got %q", in, expect, actual)
		}
	}
}
