package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"renkon/wire"
)

// AbortWithError classifies err and renders it as the standard JSON error
// envelope: {"error": {"code", "message"}}.
func AbortWithError(c *gin.Context, err error) {
	werr := wire.From(err)
	c.AbortWithStatusJSON(werr.Status, gin.H{
		"error": gin.H{
			"code":    string(werr.Kind),
			"message": werr.Reason,
		},
	})
}

// AbortWithProtobufError renders err for a protobuf endpoint: the HTTP
// status still reflects the taxonomy, and grpc-status/grpc-message carry
// the mapped gRPC code so grpc-web clients see a proper failure.
func AbortWithProtobufError(c *gin.Context, err error, contentType string) {
	werr := wire.From(err)
	st := wire.GRPCStatus(werr)
	c.Header("Content-Type", contentType)
	c.Header("grpc-status", strconv.Itoa(int(st.Code())))
	c.Header("grpc-message", st.Message())
	c.AbortWithStatus(werr.Status)
}
