// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	dbm "github.com/33cn/rps/common/db"
	"github.com/33cn/rps/executor"
	"github.com/33cn/rps/rpc/jsonclient"
	"github.com/33cn/rps/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Echo struct{}

func (e *Echo) Hello(name *string, result *interface{}) error {
	if *name == "" {
		return types.ErrInvalidParam
	}
	*result = "hello " + *name
	return nil
}

func (e *Echo) CloseQueue(name *string, result *interface{}) error {
	*result = "closed"
	return nil
}

func newTestRPC(t *testing.T, mutate func(cfg *types.Config)) *RPC {
	cfg, err := types.InitCfgString(types.GetDefaultCfgstring())
	require.NoError(t, err)
	cfg.Store.Driver = "memdb"
	if mutate != nil {
		mutate(cfg)
	}
	db, err := dbm.NewDB("test", "memdb", "", 0)
	require.NoError(t, err)
	r := New(cfg, executor.New(cfg.Exec, db))
	require.NoError(t, r.JRPC().RegisterName("Echo", &Echo{}))
	return r
}

func TestCheckIPWhitelist(t *testing.T) {
	InitIPWhitelist(&types.RPC{})
	assert.True(t, checkIPWhitelist("127.0.0.1"))
	assert.True(t, checkIPWhitelist("::1"))
	assert.False(t, checkIPWhitelist("192.168.3.1"))

	InitIPWhitelist(&types.RPC{Whitelist: []string{"192.168.3.1"}})
	assert.True(t, checkIPWhitelist("192.168.3.1"))
	assert.True(t, checkIPWhitelist("::ffff:192.168.3.1"))
	assert.False(t, checkIPWhitelist("192.168.3.2"))

	InitIPWhitelist(&types.RPC{Whitelist: []string{"*"}})
	assert.True(t, checkIPWhitelist("192.168.3.2"))
}

func TestJrpcFuncList(t *testing.T) {
	InitJrpcFuncWhitelist(&types.RPC{})
	assert.True(t, checkJrpcFuncWhitelist("Hello"))
	InitJrpcFuncWhitelist(&types.RPC{JrpcFuncWhitelist: []string{"Hello"}})
	assert.True(t, checkJrpcFuncWhitelist("Hello"))
	assert.False(t, checkJrpcFuncWhitelist("CloseQueue"))

	InitJrpcFuncBlacklist(&types.RPC{})
	assert.False(t, checkJrpcFuncBlacklist("CloseQueue"))
	InitJrpcFuncBlacklist(&types.RPC{JrpcFuncBlacklist: []string{"CloseQueue"}})
	assert.True(t, checkJrpcFuncBlacklist("CloseQueue"))
}

func TestCheckBasicAuth(t *testing.T) {
	rpcCfg = &types.RPC{}
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	assert.True(t, checkBasicAuth(req))

	rpcCfg = &types.RPC{JrpcUserName: "user", JrpcUserPasswd: "pass"}
	assert.False(t, checkBasicAuth(req))
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte("user:pass")))
	assert.True(t, checkBasicAuth(req))
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte("user:bad")))
	assert.False(t, checkBasicAuth(req))
	req.Header.Set("Authorization", "Basic !!!")
	assert.False(t, checkBasicAuth(req))
}

func TestJSONRPCHandler(t *testing.T) {
	r := newTestRPC(t, nil)
	ts := httptest.NewServer(r.Handler())
	defer ts.Close()

	client, err := jsonclient.NewJSONClient(ts.URL)
	require.NoError(t, err)
	var res string
	require.NoError(t, client.Call("Echo.Hello", "rps", &res))
	assert.Equal(t, "hello rps", res)

	err = client.Call("Echo.Hello", "", &res)
	assert.EqualError(t, err, types.ErrInvalidParam.Error())

	err = client.Call("Echo.Missing", "", &res)
	assert.Error(t, err)

	resp, err := http.Post(ts.URL, "application/json", strings.NewReader("not json"))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "parse request err")

	resp, err = http.Get(ts.URL + "/nothing")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestJSONRPCBasicAuth(t *testing.T) {
	r := newTestRPC(t, func(cfg *types.Config) {
		cfg.RPC.JrpcUserName = "user"
		cfg.RPC.JrpcUserPasswd = "pass"
	})
	ts := httptest.NewServer(r.Handler())
	defer ts.Close()

	client, err := jsonclient.NewJSONClient(ts.URL)
	require.NoError(t, err)
	var res string
	err = client.Call("Echo.Hello", "rps", &res)
	assert.EqualError(t, err, "Unauthorized")

	client.SetBasicAuth("user", "pass")
	require.NoError(t, client.Call("Echo.Hello", "rps", &res))
	assert.Equal(t, "hello rps", res)
}

func TestRemoteFuncBlacklist(t *testing.T) {
	r := newTestRPC(t, func(cfg *types.Config) {
		cfg.RPC.Whitelist = []string{"*"}
		cfg.RPC.JrpcFuncBlacklist = []string{"CloseQueue"}
	})
	handler := r.Handler()

	post := func(remote, body string) string {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.RemoteAddr = remote
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Body.String()
	}
	body := `{"method":"Echo.CloseQueue","params":["x"],"id":1}`
	assert.Contains(t, post("10.0.0.1:1234", body), "The CloseQueue method is not authorized!")
	// 本地请求不受限制
	assert.Contains(t, post("127.0.0.1:1234", body), "closed")
	assert.Contains(t, post("10.0.0.1:1234", `{"method":"Echo.Hello","params":["x"],"id":2}`), "hello x")
}

func TestRemoteIPDenied(t *testing.T) {
	r := newTestRPC(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"method":"Echo.Hello","params":["x"],"id":1}`))
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), "The 10.0.0.1 Address is not authorized!")
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRPC(t, nil)
	ts := httptest.NewServer(r.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var m map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	assert.Contains(t, m, "exec.tx.ok")

	r = newTestRPC(t, func(cfg *types.Config) { cfg.Metrics.EnableMetrics = false })
	ts2 := httptest.NewServer(r.Handler())
	defer ts2.Close()
	resp2, err := http.Get(ts2.URL + "/metrics")
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)
}

func TestCORS(t *testing.T) {
	r := newTestRPC(t, func(cfg *types.Config) { cfg.RPC.CorsDomains = []string{"http://example.com"} })
	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.RemoteAddr = "127.0.0.1:1234"
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)
	assert.Equal(t, "http://example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestListenClose(t *testing.T) {
	r := newTestRPC(t, func(cfg *types.Config) { cfg.RPC.JrpcBindAddr = "127.0.0.1:0" })
	port, err := r.Listen()
	require.NoError(t, err)
	assert.True(t, port > 0)
	r.Close()
}
