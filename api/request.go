package api

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/http"

	"github.com/mediadex-cli/mediadex/constant"
	"github.com/mediadex-cli/mediadex/log"
	"github.com/mediadex-cli/mediadex/network"
)

// doRequest executes an HTTP request against an upstream and classifies failures.
// A nil client falls back to the shared tuned client.
func doRequest(ctx context.Context, client *http.Client, apiName, method, url string, header http.Header, body []byte) (*http.Response, error) {
	if client == nil {
		client = network.Client
	}

	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, TransportError(apiName, err)
	}

	req.Header.Set("User-Agent", constant.UserAgent)
	for k, values := range header {
		for _, v := range values {
			req.Header.Set(k, v)
		}
	}

	log.Debugf("%s: %s %s", apiName, method, url)
	resp, err := client.Do(req)
	if err != nil {
		return nil, TransportError(apiName, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		log.Errorf("%s returned status %d", apiName, resp.StatusCode)
		return nil, statusError(apiName, resp.Status, resp.StatusCode)
	}

	return resp, nil
}

// getJSON performs a GET and decodes the JSON response body into v.
func getJSON(ctx context.Context, client *http.Client, apiName, url string, header http.Header, v any) error {
	resp, err := doRequest(ctx, client, apiName, http.MethodGet, url, header, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return UpstreamError(apiName, resp.StatusCode, fmt.Sprintf("malformed json response: %v", err))
	}
	return nil
}

// getXML performs a GET and decodes the XML response body into v.
func getXML(ctx context.Context, client *http.Client, apiName, url string, header http.Header, v any) error {
	resp, err := doRequest(ctx, client, apiName, http.MethodGet, url, header, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := xml.NewDecoder(resp.Body).Decode(v); err != nil {
		return UpstreamError(apiName, resp.StatusCode, fmt.Sprintf("malformed xml response: %v", err))
	}
	return nil
}

// postJSON performs a POST with the given raw body and decodes the JSON response into v.
// Used for GraphQL and Apicalypse structured query protocols.
func postJSON(ctx context.Context, client *http.Client, apiName, url string, header http.Header, body []byte, v any) error {
	resp, err := doRequest(ctx, client, apiName, http.MethodPost, url, header, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return UpstreamError(apiName, resp.StatusCode, fmt.Sprintf("malformed json response: %v", err))
	}
	return nil
}
