package http

import (
	"bytes"
	"context"
	"encoding/json"
	"html/template"
	nethttp "net/http"
	"strconv"
	"strings"

	"github.com/apex/log"

	"go-meddevice-intelligence-ui/internal/config"
	"go-meddevice-intelligence-ui/internal/connectors/prediction"
	"go-meddevice-intelligence-ui/internal/dashboard"
)

const defaultQuantityInCommerce = 1000

type uiHandlers struct {
	cfg       config.Config
	predictor Predictor
	tmpl      *template.Template
}

func newDashboard(cfg config.Config, predictor Predictor) *uiHandlers {
	return &uiHandlers{cfg: cfg, predictor: predictor, tmpl: dashboardTemplate}
}

type pageData struct {
	App         config.AppConfig
	Dark        bool
	AnimationMS int64
	Debug       bool
	Mode        string

	Tabs   []dashboard.Tab
	Active dashboard.Tab

	RiskClasses     []dashboard.RiskClassOption
	Countries       []dashboard.CountryOption
	Classifications []string
	Actions         []dashboard.ActionOption
	StatusCountries []string

	Pre         prediction.PreMulticlassRequest
	Post        prediction.PostBinaryRequest
	Status      prediction.StatusSummaryRequest
	FieldErrors map[string]string

	PreResult    *dashboard.PreMulticlassView
	PostResult   *dashboard.PostBinaryView
	StatusResult *dashboard.StatusSummaryView
	Raw          string
}

func (u *uiHandlers) page(tab string) pageData {
	return pageData{
		App:             u.cfg.App,
		Dark:            u.cfg.DarkTheme(),
		AnimationMS:     u.cfg.UI.ChartAnimationDuration.Milliseconds(),
		Debug:           u.cfg.Features.EnableDebugMode,
		Mode:            u.predictor.Mode(),
		Tabs:            dashboard.Tabs,
		Active:          dashboard.ResolveTab(tab),
		RiskClasses:     dashboard.RiskClassOptions,
		Countries:       dashboard.PreMulticlassCountries(),
		Classifications: dashboard.DeviceClassifications,
		Actions:         dashboard.ActionOptions(),
		StatusCountries: dashboard.StatusSummaryCountries,
		Pre:             prediction.PreMulticlassRequest{QuantityInCommerce: defaultQuantityInCommerce},
	}
}

func (u *uiHandlers) render(w nethttp.ResponseWriter, code int, data pageData) {
	var buf bytes.Buffer
	if err := u.tmpl.Execute(&buf, data); err != nil {
		log.WithError(err).Error("failed to render dashboard")
		nethttp.Error(w, "failed to render dashboard", nethttp.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(buf.Bytes())
}

// debugDump fills the raw panel shown in debug mode.
func (u *uiHandlers) debugDump(data *pageData, v any, err error) {
	if !u.cfg.Features.EnableDebugMode {
		return
	}
	if err != nil {
		data.Raw = "error: " + err.Error()
		return
	}
	raw, mErr := json.MarshalIndent(v, "", "  ")
	if mErr != nil {
		data.Raw = "error: " + mErr.Error()
		return
	}
	data.Raw = string(raw)
}

func (u *uiHandlers) pageHandler(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.URL.Path != "/" {
		nethttp.NotFound(w, r)
		return
	}
	u.render(w, nethttp.StatusOK, u.page(r.URL.Query().Get("tab")))
}

// acceptForm redirects GETs back to the tab and parses POST bodies.
func acceptForm(w nethttp.ResponseWriter, r *nethttp.Request, tab string) bool {
	if r.Method != nethttp.MethodPost {
		nethttp.Redirect(w, r, "/?tab="+tab, nethttp.StatusSeeOther)
		return false
	}
	r.Body = nethttp.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := r.ParseForm(); err != nil {
		nethttp.Error(w, "invalid form submission", nethttp.StatusBadRequest)
		return false
	}
	return true
}

func formValue(r *nethttp.Request, key string) string {
	return strings.TrimSpace(r.PostFormValue(key))
}

func (u *uiHandlers) preMulticlassSubmitHandler(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !acceptForm(w, r, dashboard.TabPreMulticlass) {
		return
	}

	qty, _ := strconv.Atoi(formValue(r, "quantityInCommerce"))
	req := prediction.PreMulticlassRequest{
		DeviceName:             formValue(r, "deviceName"),
		ManufacturerSourceName: formValue(r, "manufacturerSourceName"),
		RiskClass:              dashboard.ResolveRiskClass(r.PostFormValue("riskClass")),
		Classification:         formValue(r, "classification"),
		Implanted:              r.PostFormValue("implanted") != "",
		QuantityInCommerce:     qty,
		Country:                strings.ToUpper(formValue(r, "country")),
		ParentCompany:          formValue(r, "parentCompany"),
	}

	data := u.page(dashboard.TabPreMulticlass)
	data.Pre = req
	if err := prediction.ValidateRequest(req); err != nil {
		data.FieldErrors = prediction.FieldErrors(err)
		u.render(w, nethttp.StatusBadRequest, data)
		return
	}

	var resp *prediction.PreMulticlassResponse
	err := callUpstream(r.Context(), endpointPreMulticlass, data.Mode, func(ctx context.Context) error {
		var err error
		resp, err = u.predictor.PredictPreMulticlass(ctx, req)
		return err
	})
	if err == nil {
		view := dashboard.NewPreMulticlassView(*resp)
		data.PreResult = &view
		recordPrediction(u.cfg.Features.EnableAnalytics, endpointPreMulticlass, string(resp.PredClass))
	}
	u.debugDump(&data, resp, err)
	u.render(w, nethttp.StatusOK, data)
}

func (u *uiHandlers) postBinarySubmitHandler(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !acceptForm(w, r, dashboard.TabPostBinary) {
		return
	}

	req := prediction.PostBinaryRequest{
		Reason:        formValue(r, "reason"),
		Action:        prediction.Action(formValue(r, "action")),
		ActionSummary: formValue(r, "actionSummary"),
	}

	data := u.page(dashboard.TabPostBinary)
	data.Post = req
	if err := prediction.ValidateRequest(req); err != nil {
		data.FieldErrors = prediction.FieldErrors(err)
		u.render(w, nethttp.StatusBadRequest, data)
		return
	}

	var resp *prediction.PostBinaryResponse
	err := callUpstream(r.Context(), endpointPostBinary, data.Mode, func(ctx context.Context) error {
		var err error
		resp, err = u.predictor.PredictPostBinary(ctx, req)
		return err
	})
	if err == nil {
		view := dashboard.NewPostBinaryView(*resp)
		data.PostResult = &view
		recordPrediction(u.cfg.Features.EnableAnalytics, endpointPostBinary, view.Label)
	}
	u.debugDump(&data, resp, err)
	u.render(w, nethttp.StatusOK, data)
}

func (u *uiHandlers) statusSummarySubmitHandler(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !acceptForm(w, r, dashboard.TabStatusSummary) {
		return
	}

	req := prediction.StatusSummaryRequest{
		Country:    formValue(r, "country"),
		DeviceName: formValue(r, "deviceName"),
	}

	data := u.page(dashboard.TabStatusSummary)
	data.Status = req
	if err := prediction.ValidateRequest(req); err != nil {
		data.FieldErrors = prediction.FieldErrors(err)
		u.render(w, nethttp.StatusBadRequest, data)
		return
	}

	var resp *prediction.StatusSummaryResponse
	err := callUpstream(r.Context(), endpointStatusSummary, data.Mode, func(ctx context.Context) error {
		var err error
		resp, err = u.predictor.StatusSummary(ctx, req)
		return err
	})
	if err == nil {
		view := dashboard.NewStatusSummaryView(*resp)
		data.StatusResult = &view
		recordPrediction(u.cfg.Features.EnableAnalytics, endpointStatusSummary, statusSummaryLabel(resp))
	}
	u.debugDump(&data, resp, err)
	u.render(w, nethttp.StatusOK, data)
}

func faviconHandler(w nethttp.ResponseWriter, _ *nethttp.Request) {
	w.WriteHeader(nethttp.StatusNoContent)
}

var dashboardTemplate = template.Must(template.New("dashboard").Funcs(template.FuncMap{
	"width": func(share float64) string {
		return strconv.FormatFloat(min(max(share, 0), 100), 'f', 1, 64) + "%"
	},
	"ratioWidth": func(ratio float64) string {
		return strconv.FormatFloat(min(max(ratio*100, 0), 100), 'f', 1, 64) + "%"
	},
	"hex":        dashboard.Hex,
	"percent":    dashboard.FormatPercent,
	"eventDate":  dashboard.FormatEventDate,
	"formatInt":  func(v float64) string { return strconv.FormatInt(int64(v), 10) },
	"fieldError": func(errs map[string]string, field string) string { return errs[field] },
}).Parse(dashboardHTML))

const dashboardHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>{{.App.Name}}</title>
  <style>
    @import url("https://fonts.googleapis.com/css?family=Open+Sans:300,400,600,700");

    :root {
      --brand: #0e5d8f;
      --brand-2: #0971b2;
      --bg: #f7f7f7;
      --paper: #fff;
      --text: #333;
      --muted: #777;
      --line: #ddd;
      --line-soft: #eee;
      --head: #f0f0f0;
      --ok-bg: #dff0d8;
      --ok-text: #3c763d;
      --bad-bg: #f2dede;
      --bad-text: #a94442;
      --bar-track: #eef2f6;
      --anim: {{.AnimationMS}}ms;
    }

    body.theme-dark {
      --bg: #15191e;
      --paper: #1f252c;
      --text: #e4e7eb;
      --muted: #9aa5b1;
      --line: #323b45;
      --line-soft: #2a323b;
      --head: #262e37;
      --bar-track: #2a323b;
    }

    * { box-sizing: border-box; }

    body {
      margin: 0;
      background: var(--bg);
      color: var(--text);
      font-family: "Open Sans", "Helvetica Neue", Helvetica, Arial, sans-serif;
      font-size: 14px;
      line-height: 1.42857143;
    }

    header {
      background: linear-gradient(to right, var(--brand) 0, var(--brand-2) 100%);
      border-bottom: 1px solid #0b4e79;
      box-shadow: 0 2px 5px rgba(0, 0, 0, 0.15);
    }

    .container {
      margin: 0 auto;
      padding: 0 15px;
      width: 100%;
      max-width: 1280px;
    }

    .header-inner {
      min-height: 70px;
      display: flex;
      align-items: center;
      justify-content: space-between;
      gap: 16px;
    }

    .navbar-brand { color: #fff; font-size: 22px; font-weight: 300; }
    .navbar-brand strong { font-weight: 600; }
    .navbar-note { color: rgba(255, 255, 255, 0.88); font-size: 13px; font-weight: 300; text-align: right; }

    main { padding: 18px 0 32px; }

    .tabs {
      display: flex;
      gap: 8px;
      margin-bottom: 14px;
      border-bottom: 1px solid var(--line);
      padding-bottom: 8px;
    }

    .tab-btn {
      border: 1px solid #c7d7e5;
      background: #f3f8fc;
      color: var(--brand);
      padding: 6px 10px;
      font-size: 12px;
      font-weight: 600;
      cursor: pointer;
      text-decoration: none;
    }

    .tab-btn.active { background: var(--brand); color: #fff; border-color: var(--brand); }
    .tab-btn small { display: block; font-weight: 400; opacity: 0.8; }

    .panel-grid {
      display: grid;
      gap: 14px;
      grid-template-columns: 2fr 3fr;
      margin-bottom: 14px;
    }

    .panel { border: 1px solid var(--line); background: var(--paper); margin-bottom: 14px; }
    .panel-heading { padding: 10px 12px; border-bottom: 1px solid var(--line); background: var(--head); }
    .panel-body { padding: 10px 12px 12px; }

    h2 { margin: 20px 0 10px; font-size: 20px; font-weight: 400; border-bottom: 1px solid var(--line-soft); padding-bottom: 6px; }
    h3 { margin: 0; font-size: 16px; font-weight: 600; }

    label { display: block; font-weight: 600; font-size: 12px; margin: 10px 0 4px; }
    input[type=text], input[type=number], select, textarea {
      width: 100%;
      padding: 6px 8px;
      border: 1px solid var(--line);
      background: var(--paper);
      color: var(--text);
      font: inherit;
    }
    textarea { min-height: 80px; }
    .check label { display: inline; font-weight: 400; }
    .field-error { color: var(--bad-text); font-size: 12px; }

    .submit {
      margin-top: 14px;
      width: 100%;
      padding: 8px 10px;
      background: var(--brand);
      color: #fff;
      border: 0;
      font-weight: 600;
      cursor: pointer;
    }
    .submit[disabled] { opacity: 0.6; cursor: wait; }

    table { width: 100%; border-collapse: collapse; }
    th, td { padding: 8px; border-top: 1px solid var(--line); text-align: left; font-size: 13px; }
    thead th {
      border-bottom: 2px solid var(--line);
      border-top: 0;
      color: var(--muted);
      font-size: 11px;
      text-transform: uppercase;
      letter-spacing: 0.5px;
    }

    .pill {
      display: inline-block;
      border-radius: 2px;
      font-size: 11px;
      padding: 2px 6px;
      font-weight: 700;
      color: #fff;
      text-transform: uppercase;
      letter-spacing: 0.2px;
    }

    .ok { color: var(--ok-text); background: var(--ok-bg); }
    .bad { color: var(--bad-text); background: var(--bad-bg); }

    .cards { display: grid; gap: 14px; grid-template-columns: repeat(auto-fit, minmax(180px, 1fr)); margin-bottom: 14px; }
    .card { border: 1px solid var(--line); border-left-width: 4px; background: var(--paper); padding: 12px; }
    .card .value { font-size: 26px; font-weight: 300; }
    .card .title { color: var(--muted); font-size: 12px; }

    .bar { margin: 6px 0; }
    .bar-label { display: flex; justify-content: space-between; font-size: 12px; }
    .bar-track { background: var(--bar-track); height: 14px; }
    .bar-fill { height: 14px; transition: width var(--anim) ease-out; }

    .big { font-size: 28px; font-weight: 600; }
    .placeholder { text-align: center; color: var(--muted); padding: 48px 0; }
    .notice { border: 1px solid #ebccd1; background: var(--bad-bg); color: var(--bad-text); padding: 12px; }
    .hint { margin-top: 8px; color: var(--muted); font-size: 12px; }
    pre.raw { background: var(--head); padding: 10px; overflow: auto; font-size: 12px; }
  </style>
</head>
<body{{if .Dark}} class="theme-dark"{{end}}>
  <header>
    <div class="container header-inner">
      <div class="navbar-brand"><strong>{{.App.Name}}</strong> <small>v{{.App.Version}}</small></div>
      <div class="navbar-note">{{.App.Description}}<br />
        {{if eq .Mode "mock"}}<span class="pill bad">mock data</span>{{else}}<span class="pill ok">live API</span>{{end}}
        {{if .Debug}}<span class="pill bad">debug</span>{{end}}
      </div>
    </div>
  </header>

  <main class="container">
    <nav class="tabs">
      {{range .Tabs}}
      <a class="tab-btn{{if eq .ID $.Active.ID}} active{{end}}" href="/?tab={{.ID}}">{{.Name}}<small>{{.Description}}</small></a>
      {{end}}
    </nav>

    {{if eq .Active.ID "pre-multiclass"}}
    <section class="panel-grid">
      <div class="panel">
        <div class="panel-heading"><h3>Pre-Use Severity Prediction</h3></div>
        <div class="panel-body">
          <form method="post" action="/ui/pre-multiclass">
            <label for="deviceName">Device Name</label>
            <input type="text" id="deviceName" name="deviceName" value="{{.Pre.DeviceName}}" required />
            {{with fieldError .FieldErrors "deviceName"}}<div class="field-error">Device name {{.}}</div>{{end}}

            <label for="manufacturerSourceName">Manufacturer</label>
            <input type="text" id="manufacturerSourceName" name="manufacturerSourceName" value="{{.Pre.ManufacturerSourceName}}" required />
            {{with fieldError .FieldErrors "manufacturerSourceName"}}<div class="field-error">Manufacturer {{.}}</div>{{end}}

            <label for="riskClass">Risk Class</label>
            <select id="riskClass" name="riskClass" required>
              <option value="">Select risk class</option>
              {{range .RiskClasses}}
              <option value="{{.Label}}"{{if eq .Code $.Pre.RiskClass}} selected{{end}}>{{.Label}} ({{.Risk}} risk)</option>
              {{end}}
            </select>
            {{with fieldError .FieldErrors "riskClass"}}<div class="field-error">Risk class {{.}}</div>{{end}}

            <label for="classification">Classification</label>
            <input type="text" id="classification" name="classification" list="classifications" value="{{.Pre.Classification}}" placeholder="e.g., Cardiac Device" required />
            <datalist id="classifications">
              {{range .Classifications}}<option value="{{.}}"></option>{{end}}
            </datalist>
            {{with fieldError .FieldErrors "classification"}}<div class="field-error">Classification {{.}}</div>{{end}}

            <div class="check">
              <input type="checkbox" id="implanted" name="implanted" value="true"{{if .Pre.Implanted}} checked{{end}} />
              <label for="implanted">Implanted device</label>
            </div>

            <label for="quantityInCommerce">Quantity in Commerce</label>
            <input type="number" id="quantityInCommerce" name="quantityInCommerce" min="1" max="100000" value="{{.Pre.QuantityInCommerce}}" />
            {{with fieldError .FieldErrors "quantityInCommerce"}}<div class="field-error">Quantity {{.}}</div>{{end}}

            <label for="country">Country</label>
            <select id="country" name="country" required>
              <option value="">Select country</option>
              {{range .Countries}}
              <option value="{{.Code}}"{{if eq .Code $.Pre.Country}} selected{{end}}>{{.Code}} - {{.Name}}</option>
              {{end}}
            </select>
            {{with fieldError .FieldErrors "country"}}<div class="field-error">Country {{.}}</div>{{end}}

            <label for="parentCompany">Parent Company</label>
            <input type="text" id="parentCompany" name="parentCompany" value="{{.Pre.ParentCompany}}" required />
            {{with fieldError .FieldErrors "parentCompany"}}<div class="field-error">Parent company {{.}}</div>{{end}}

            <button class="submit" type="submit">Predict Severity</button>
          </form>
        </div>
      </div>

      <div class="panel">
        <div class="panel-heading"><h3>Prediction Analysis</h3></div>
        <div class="panel-body">
          {{with .PreResult}}
          <p>Predicted Risk Category</p>
          <p><span class="pill big" style="background: {{hex .BadgeColor}}">{{.PredClass}}</span></p>
          <h3>Probability Distribution</h3>
          {{range .Chart}}
          <div class="bar">
            <div class="bar-label"><span>{{.Label}}</span><span>{{percent .Value}}</span></div>
            <div class="bar-track"><div class="bar-fill" style="width: {{width .Share}}; background: {{.Hex}}"></div></div>
          </div>
          {{end}}
          <p>Confidence: <strong>{{.Confidence}}</strong></p>
          <p>Historical Data: <strong>{{if .HistoryPresent}}Found{{else}}Not Found{{end}}</strong></p>
          <p class="hint">{{.HistoryMessage}}</p>
          <p>Prediction: Likely Recall Severity &rarr; <strong>{{.PredClass}}</strong> ({{.TopProbability}})</p>
          {{else}}
          <div class="placeholder">Results will be displayed here after submission</div>
          {{end}}
          {{if .Raw}}<pre class="raw">{{.Raw}}</pre>{{end}}
        </div>
      </div>
    </section>
    {{end}}

    {{if eq .Active.ID "post-binary"}}
    <section class="panel-grid">
      <div class="panel">
        <div class="panel-heading"><h3>Post-Event Risk Assessment</h3></div>
        <div class="panel-body">
          <form method="post" action="/ui/post-binary">
            <label for="reason">Reason</label>
            <textarea id="reason" name="reason" placeholder="Describe the reason for this event..." required>{{.Post.Reason}}</textarea>
            {{with fieldError .FieldErrors "reason"}}<div class="field-error">Reason {{.}}</div>{{end}}

            <label for="action">Action</label>
            <select id="action" name="action" required>
              <option value="">Select action</option>
              {{range .Actions}}
              <option value="{{.Value}}"{{if eq .Value $.Post.Action}} selected{{end}}>{{.Title}}</option>
              {{end}}
            </select>
            {{with fieldError .FieldErrors "action"}}<div class="field-error">Action {{.}}</div>{{end}}

            <label for="actionSummary">Action Summary</label>
            <textarea id="actionSummary" name="actionSummary" placeholder="Summarize the action taken..." required>{{.Post.ActionSummary}}</textarea>
            {{with fieldError .FieldErrors "actionSummary"}}<div class="field-error">Action summary {{.}}</div>{{end}}

            <button class="submit" type="submit">Assess Risk</button>
          </form>
        </div>
      </div>

      <div class="panel">
        <div class="panel-heading"><h3>Risk Analysis</h3></div>
        <div class="panel-body">
          {{with .PostResult}}
          <p class="big" style="color: {{.GaugeHex}}">{{.Label}}</p>
          <div class="bar">
            <div class="bar-label"><span>Risk Score</span><span>{{.ScorePercent}}</span></div>
            <div class="bar-track"><div class="bar-fill" style="width: {{ratioWidth .Score}}; background: {{.GaugeHex}}"></div></div>
          </div>
          <p>Confidence Level: <strong>{{.Confidence}}</strong></p>
          <p class="hint">{{.Interpretation}}</p>
          {{else}}
          <div class="placeholder">Results will be displayed here after submission</div>
          {{end}}
          {{if .Raw}}<pre class="raw">{{.Raw}}</pre>{{end}}
        </div>
      </div>
    </section>
    {{end}}

    {{if eq .Active.ID "status-summary"}}
    <div class="panel">
      <div class="panel-heading"><h3>Device Status Summary</h3></div>
      <div class="panel-body">
        <form method="post" action="/ui/status-summary">
          <label for="status-country">Country</label>
          <select id="status-country" name="country" required>
            <option value="">Select country</option>
            {{range .StatusCountries}}
            <option value="{{.}}"{{if eq . $.Status.Country}} selected{{end}}>{{.}}</option>
            {{end}}
          </select>
          {{with fieldError .FieldErrors "country"}}<div class="field-error">Country {{.}}</div>{{end}}

          <label for="status-deviceName">Device Name</label>
          <input type="text" id="status-deviceName" name="deviceName" value="{{.Status.DeviceName}}" placeholder="Enter device name" required />
          {{with fieldError .FieldErrors "deviceName"}}<div class="field-error">Device name {{.}}</div>{{end}}

          <button class="submit" type="submit">Get Summary</button>
        </form>
      </div>
    </div>

    {{with .StatusResult}}
    {{if .Failed}}
    <div class="notice">
      <strong>{{.Err}}</strong>
      <div class="hint">No events are recorded for this device in the selected country. Check the spelling or try another country.</div>
    </div>
    {{else}}
    <h2>Event Status Overview</h2>
    <div class="cards">
      {{range .Cards}}
      <div class="card" style="border-left-color: {{hex .Color}}">
        <div class="value">{{.Value}}</div>
        <div class="title">{{.Title}}</div>
      </div>
      {{end}}
    </div>

    <section class="panel-grid">
      <div class="panel">
        <div class="panel-heading"><h3>Status Distribution</h3></div>
        <div class="panel-body">
          {{range .StatusChart}}
          <div class="bar">
            <div class="bar-label"><span>{{.Label}}</span><span>{{formatInt .Value}}</span></div>
            <div class="bar-track"><div class="bar-fill" style="width: {{width .Share}}; background: {{.Hex}}"></div></div>
          </div>
          {{end}}
        </div>
      </div>
      <div class="panel">
        <div class="panel-heading"><h3>Quick Stats</h3></div>
        <div class="panel-body">
          <p>Total Events: <strong>{{.TotalEvents}}</strong></p>
          <p>Most Common Status: <strong>{{.MostCommonStatus}}</strong></p>
          <p>Active Events: <strong>{{.ActiveEvents}}</strong></p>
        </div>
      </div>
    </section>

    <div class="panel">
      <div class="panel-heading"><h3>Recent Events</h3></div>
      <div class="panel-body">
        <table>
          <thead><tr><th>Event ID</th><th>Action</th><th>Status</th><th>Date</th></tr></thead>
          <tbody>
            {{range .Events}}
            <tr>
              <td>{{.ID}}</td>
              <td>{{.Action}}</td>
              <td><span class="pill" style="background: {{hex .Color}}">{{.Status}}</span></td>
              <td>{{eventDate .Date}}</td>
            </tr>
            {{else}}
            <tr><td colspan="4">No recent events</td></tr>
            {{end}}
          </tbody>
        </table>
      </div>
    </div>

    <div class="panel">
      <div class="panel-heading"><h3>Top Manufacturers</h3></div>
      <div class="panel-body">
        {{range .Manufacturers}}
        <div class="bar">
          <div class="bar-label"><span>{{.Label}}</span><span>{{formatInt .Value}} events</span></div>
          <div class="bar-track"><div class="bar-fill" style="width: {{width .Share}}; background: {{.Hex}}"></div></div>
        </div>
        {{else}}
        <p class="hint">No manufacturer data</p>
        {{end}}
      </div>
    </div>
    {{end}}
    {{end}}
    {{if .Raw}}<pre class="raw">{{.Raw}}</pre>{{end}}
    {{end}}
  </main>

  <script>
    document.querySelectorAll("form").forEach(function (form) {
      form.addEventListener("submit", function () {
        var btn = form.querySelector(".submit");
        if (btn) {
          btn.disabled = true;
          btn.textContent = "Analyzing...";
        }
      });
    });
  </script>
</body>
</html>
`
