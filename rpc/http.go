// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/rpc/jsonrpc"
	"strings"

	"github.com/rcrowley/go-metrics"
	"github.com/rs/cors"
)

// HTTPConn adapt HTTP connection to ReadWriteCloser
type HTTPConn struct {
	r   *http.Request
	in  io.Reader
	out io.Writer
}

// Read rewrite the read of http
func (c *HTTPConn) Read(p []byte) (n int, err error) { return c.in.Read(p) }

// Write rewrite the write of http
func (c *HTTPConn) Write(d []byte) (n int, err error) { return c.out.Write(d) }

// Close rewrite the close of http
func (c *HTTPConn) Close() error { return nil }

// Listen jsonrpcserver listen
func (j *JSONRPCServer) Listen(addr string) (int, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return 0, err
	}
	j.l = listener
	j.srv = &http.Server{Handler: j.handler}
	go func() {
		if err := j.srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			rlog.Error("JSONRPCServer serve", "err", err)
		}
	}()
	return listener.Addr().(*net.TCPAddr).Port, nil
}

func (r *RPC) newHandler() http.Handler {
	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		rlog.Debug("JSONRPCServer", "RemoteAddr", req.RemoteAddr)
		ip, _, err := net.SplitHostPort(req.RemoteAddr)
		if err != nil {
			writeError(w, 0, fmt.Sprintf(`The %s Address is not authorized!`, req.RemoteAddr))
			return
		}
		if !checkIPWhitelist(ip) {
			writeError(w, 0, fmt.Sprintf(`The %s Address is not authorized!`, ip))
			return
		}
		if !checkBasicAuth(req) {
			writeError(w, 0, "Unauthorized")
			return
		}
		switch req.URL.Path {
		case "/metrics":
			if !r.metrics.EnableMetrics {
				http.NotFound(w, req)
				return
			}
			w.Header().Set("Content-type", "application/json")
			metrics.WriteJSONOnce(r.exec.Metrics(), w)
		case "/":
			r.serveJSONRPC(w, req, ip)
		default:
			http.NotFound(w, req)
		}
	})
	co := cors.New(cors.Options{
		AllowedOrigins: r.cfg.CorsDomains,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})
	return co.Handler(handler)
}

func (r *RPC) serveJSONRPC(w http.ResponseWriter, req *http.Request, ip string) {
	data, err := io.ReadAll(req.Body)
	if err != nil {
		writeError(w, 0, fmt.Sprintf(`The %s read body err!`, ip))
		return
	}
	//格式做一个检查
	client, err := parseJSONRpcParams(data)
	errstr := "nil"
	if err != nil {
		errstr = err.Error()
	}
	rlog.Debug("JSONRPCServer", "request", string(data), "err", errstr)
	if err != nil {
		writeError(w, 0, fmt.Sprintf(`parse request err %s`, err.Error()))
		return
	}
	//本地请求不做方法限制
	if !net.ParseIP(ip).IsLoopback() {
		funcName := client.Method[strings.LastIndex(client.Method, ".")+1:]
		if checkJrpcFuncBlacklist(funcName) || !checkJrpcFuncWhitelist(funcName) {
			writeError(w, client.ID, fmt.Sprintf(`The %s method is not authorized!`, funcName))
			return
		}
	}
	serverCodec := jsonrpc.NewServerCodec(&HTTPConn{in: bytes.NewReader(data), out: w, r: req})
	w.Header().Set("Content-type", "application/json")
	w.WriteHeader(200)
	if err := r.japi.s.ServeRequest(serverCodec); err != nil {
		rlog.Debug("Error while serving JSON request", "err", err)
	}
}

type serverResponse struct {
	ID     uint64      `json:"id"`
	Result interface{} `json:"result"`
	Error  interface{} `json:"error"`
}

func writeError(w http.ResponseWriter, id uint64, errstr string) {
	w.Header().Set("Content-type", "application/json")
	//错误的请求也返回 200
	w.WriteHeader(200)
	resp, err := json.Marshal(&serverResponse{id, nil, errstr})
	if err != nil {
		rlog.Debug("json marshal error, never happen")
		return
	}
	if _, err := w.Write(resp); err != nil {
		rlog.Debug("Write", "err", err)
	}
}

type clientRequest struct {
	Method string         `json:"method"`
	Params [1]interface{} `json:"params"`
	ID     uint64         `json:"id"`
}

func parseJSONRpcParams(data []byte) (*clientRequest, error) {
	var req clientRequest
	err := json.Unmarshal(data, &req)
	if err != nil {
		return nil, err
	}
	return &req, nil
}
