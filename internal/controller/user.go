package controller

import (
	"net/http"

	"github.com/cantiere-digitale/giornale/internal/util"
	"github.com/gin-gonic/gin"
)

type UserController struct {
	*baseController
}

func (uc UserController) Me(ctx *gin.Context) {
	authUser, err := uc.getAuthUser(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return
	}

	user, err := uc.app.Repository.User.GetById(ctx, nil, authUser.ID)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get user", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"user": user,
	})
}

func (uc UserController) UpdateProfile(ctx *gin.Context) {
	type Request struct {
		DisplayName string `json:"displayName" form:"displayName" binding:"omitempty,strNotEmpty,max=100"`
		ProfileURL  string `json:"profileUrl" form:"profileUrl" binding:"omitempty,url"`
	}
	var body Request

	authUser, err := uc.getAuthUser(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return
	}

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	if err := uc.app.Repository.User.UpdateProfile(ctx, nil, authUser.ID, body.DisplayName, body.ProfileURL); err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to update profile", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, nil)
}
