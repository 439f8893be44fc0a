// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonclient 实现 jsonrpc 客户端, 请求对象序列化成 json 通过 http post 发送
package jsonclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrEmptyResult 服务端没有返回结果
var ErrEmptyResult = errors.New("ErrEmptyResult")

// JSONClient a object of jsonclient
type JSONClient struct {
	url      string
	user     string
	password string
	client   *http.Client
}

// NewJSONClient produce a json object
func NewJSONClient(url string) (*JSONClient, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "http://" + url
	}
	return &JSONClient{url: url, client: &http.Client{Timeout: 30 * time.Second}}, nil
}

// SetBasicAuth 服务端开启 basic auth 时使用
func (client *JSONClient) SetBasicAuth(user, password string) {
	client.user = user
	client.password = password
}

type clientRequest struct {
	Method string         `json:"method"`
	Params [1]interface{} `json:"params"`
	ID     uint64         `json:"id"`
}

type clientResponse struct {
	ID     uint64           `json:"id"`
	Result *json.RawMessage `json:"result"`
	Error  interface{}      `json:"error"`
}

// Call jsonclinet call method
func (client *JSONClient) Call(method string, params, resp interface{}) error {
	req := &clientRequest{}
	req.Method = method
	req.Params[0] = params
	data, err := json.Marshal(req)
	if err != nil {
		return err
	}
	httpreq, err := http.NewRequest(http.MethodPost, client.url, bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	httpreq.Header.Set("Content-Type", "application/json")
	if client.user != "" || client.password != "" {
		httpreq.SetBasicAuth(client.user, client.password)
	}
	postresp, err := client.client.Do(httpreq)
	if err != nil {
		return err
	}
	defer postresp.Body.Close()
	b, err := io.ReadAll(postresp.Body)
	if err != nil {
		return err
	}
	if postresp.StatusCode != http.StatusOK {
		return fmt.Errorf("http status %d: %s", postresp.StatusCode, strings.TrimSpace(string(b)))
	}
	cresp := &clientResponse{}
	err = json.Unmarshal(b, &cresp)
	if err != nil {
		return err
	}
	if cresp.Error != nil {
		x, ok := cresp.Error.(string)
		if !ok {
			return fmt.Errorf("invalid error %v", cresp.Error)
		}
		if x == "" {
			x = "unspecified error"
		}
		return errors.New(x)
	}
	if cresp.Result == nil {
		return ErrEmptyResult
	}
	return json.Unmarshal(*cresp.Result, resp)
}
