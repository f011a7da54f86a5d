// Package lspserver carries the jsonrpc2 plumbing between an editor and the
// method map a server exposes: stdio with the VSCode object codec, or a
// websocket listener for remote attach.
package lspserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"reflect"

	"github.com/gorilla/websocket"
	"github.com/sourcegraph/jsonrpc2"
	wsjsonrpc2 "github.com/sourcegraph/jsonrpc2/websocket"
)

type Method func(ctx context.Context, conn jsonrpc2.JSONRPC2, params json.RawMessage) interface{}
type MethodMap map[string]Method

type stdrwc struct{}

func (stdrwc) Read(p []byte) (int, error) {
	return os.Stdin.Read(p)
}

func (stdrwc) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}

func (stdrwc) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}

// Zu adapts a typed handler method into a Method by decoding the raw params
// into the handler's third argument via reflection. Handlers with no return
// are notifications; handlers returning (result, error) are requests.
func Zu(fn interface{}) Method {
	val := reflect.ValueOf(fn)
	in := val.Type().In(2)
	return func(ctx context.Context, conn jsonrpc2.JSONRPC2, params json.RawMessage) interface{} {
		v := reflect.New(in)
		json.Unmarshal(params, v.Interface())
		ret := val.Call([]reflect.Value{reflect.ValueOf(ctx), reflect.ValueOf(conn), v.Elem()})
		switch len(ret) {
		case 0: // notification
			return nil
		case 2: // request
			if !ret[0].IsNil() {
				return ret[0].Interface()
			}
			if !ret[1].IsNil() {
				return ret[1].Interface()
			}
			return nil
		default:
			panic("unknown arity of return")
		}
	}
}

func handler(a MethodMap) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (interface{}, error) {
		v, ok := a[req.Method]
		if !ok {
			return nil, errors.New("method not found: " + req.Method)
		}
		var params json.RawMessage
		if req.Params != nil {
			params = *req.Params
		}
		return v(ctx, conn, params), nil
	})
}

// StartServer serves the method map over stdin/stdout and blocks until the
// editor disconnects.
func StartServer(a MethodMap) {
	stream := jsonrpc2.NewBufferedStream(stdrwc{}, jsonrpc2.VSCodeObjectCodec{})
	<-jsonrpc2.NewConn(context.Background(), stream, handler(a)).DisconnectNotify()
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// editors connect from arbitrary local origins
	CheckOrigin: func(*http.Request) bool { return true },
}

// ListenAndServe serves the method map over websocket on addr, one jsonrpc2
// connection per upgraded request.
func ListenAndServe(addr string, a MethodMap) error {
	return http.ListenAndServe(addr, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		rpc := jsonrpc2.NewConn(r.Context(), wsjsonrpc2.NewObjectStream(conn), handler(a))
		<-rpc.DisconnectNotify()
	}))
}
