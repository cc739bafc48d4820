package controller

import (
	"github.com/cantiere-digitale/giornale/internal/util"
	"github.com/gin-gonic/gin"
)

type IndexController struct {
	*baseController
}

func (ic IndexController) Index(ctx *gin.Context) {
	util.ResponseSuccess(ctx, gin.H{
		"message": "Giornale dei Lavori api",
	})
}
