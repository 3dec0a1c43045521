// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.

package tpoll

// Token is an opaque identifier associated with a registration. It is echoed
// back on every Event delivered for that registration. tpoll never interprets
// a Token; equality and use as a map key are the only operations it relies on.
type Token uintptr
