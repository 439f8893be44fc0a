// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "encoding/json"

// Encode 编码, 状态数据统一使用 json
func Encode(data interface{}) []byte {
	b, err := json.Marshal(data)
	if err != nil {
		panic(err)
	}
	return b
}

// Decode 解码
func Decode(data []byte, msg interface{}) error {
	return json.Unmarshal(data, msg)
}

// MustDecode 解码失败说明数据已经损坏
func MustDecode(data []byte, msg interface{}) {
	if err := Decode(data, msg); err != nil {
		panic(err)
	}
}
