package admin_test

import (
	"net/http"

	"techstore/admin"

	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"
)

type infoResponse struct {
	Info admin.Info `json:"info"`
}

func (a *AdminSuite) TestInfoReportsTheInstall(c *gc.C) {
	client := a.client()

	w := client.get(c, "/admin/info")
	c.Assert(w.Code, gc.Equals, http.StatusOK)

	var info infoResponse
	decode(c, w, &info)
	c.Check(info.Info.DevMode, gc.Equals, true)

	// The version stays private until show-version is turned on.
	c.Check(w.Body.String(), gc.Not(jc.Contains), "version")
}

func (a *AdminSuite) TestInfoShowsVersionWhenAsked(c *gc.C) {
	conf := adminConfiguration()
	conf.Admin.ShowVersion = true
	client := &client{handler: a.newHandler(c, conf)}

	var info infoResponse
	decode(c, client.get(c, "/admin/info"), &info)
	c.Check(info.Info.Version, gc.Equals, "dev")
	c.Check(info.Info.DevMode, gc.Equals, true)
}
