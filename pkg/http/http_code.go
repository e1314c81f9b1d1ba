// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package http

var (
	Failed        = failed(500, "Request failed")
	InternalError = failed(5000, "Internal error, please contact the administrator")

	// BadRequest 400
	BadRequest = failed(4000, "Bad request")
	NotFound   = failed(4004, "Not found")
	Conflict   = failed(4009, "Already exists")

	// Unauthorized 401
	Unauthorized  = failed(4401, "Unauthorized")
	InvalidToken  = failed(4405, "Invalid token")
	TokenBeEmpty  = failed(4406, "Token cannot be empty")
	TokenExpired  = failed(4407, "Token is expired")
	LoginFailed   = failed(4410, "Login failed!")
	Misconfigured = failed(5030, "System misconfiguration")
)

var (
	Success = success(200, "Request Success")
)

func failed(code int, msg string) *Response {
	return &Response{
		Code:   code,
		Msg:    msg,
		Detail: nil,
	}
}

func success(code int, msg string) *Response {
	return &Response{
		Code:   code,
		Msg:    msg,
		Detail: nil,
	}
}
