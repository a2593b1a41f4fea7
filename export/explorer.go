package export

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/cobrasuicida/srf2025-scraper/model"
)

// DefaultPageTitle is the explorer page title used when none is configured.
const DefaultPageTitle = "SRF2025 Data Explorer"

// exportHTML renders the self-contained explorer page: the catalog is
// embedded as JSON so the file works from disk without a server. The embedded
// copy is marshaled with HTML escaping on, which keeps abstract text from
// breaking out of the script element.
func (e *Exporter) exportHTML(catalog *model.Catalog, w io.Writer) error {
	data, err := json.Marshal(documentFromCatalog(catalog))
	if err != nil {
		return fmt.Errorf("encoding catalog for explorer: %w", err)
	}

	title := e.config.PageTitle
	if title == "" {
		title = DefaultPageTitle
	}

	return explorerTemplate.Execute(w, struct {
		Title    string
		Papers   int
		Sessions int
		Catalog  template.JS
	}{
		Title:    title,
		Papers:   catalog.PaperCount(),
		Sessions: catalog.SessionCount(),
		Catalog:  template.JS(data),
	})
}

var explorerTemplate = template.Must(template.New("explorer").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
            line-height: 1.6;
            color: #333;
            background: #f5f7fa;
        }
        .container { max-width: 1400px; margin: 0 auto; padding: 20px; }
        .header {
            background: #2c3e50;
            color: white;
            border-radius: 12px;
            padding: 25px;
            margin-bottom: 20px;
            text-align: center;
        }
        .header p { color: #bdc3c7; }
        .stats-summary {
            background: white;
            border-radius: 12px;
            padding: 20px;
            margin-bottom: 20px;
            box-shadow: 0 2px 10px rgba(0, 0, 0, 0.1);
            text-align: center;
        }
        .filter-bar { display: flex; gap: 10px; margin-bottom: 20px; flex-wrap: wrap; }
        .filter-bar input, .filter-bar select {
            padding: 10px;
            border: 1px solid #ddd;
            border-radius: 6px;
            font-size: 14px;
        }
        .filter-bar input { flex: 1; min-width: 240px; }
        .filter-bar button {
            padding: 10px 15px;
            background: #e74c3c;
            color: white;
            border: none;
            border-radius: 6px;
            cursor: pointer;
        }
        .contributions-grid {
            display: grid;
            grid-template-columns: repeat(auto-fill, minmax(420px, 1fr));
            gap: 16px;
        }
        .contribution-card {
            background: white;
            border-radius: 12px;
            padding: 20px;
            box-shadow: 0 2px 10px rgba(0, 0, 0, 0.1);
        }
        .contribution-code {
            background: #3498db;
            color: white;
            padding: 4px 8px;
            border-radius: 4px;
            font-size: 12px;
            font-weight: bold;
            display: inline-block;
            margin-bottom: 8px;
        }
        .session-tag {
            background: #e74c3c;
            color: white;
            padding: 2px 6px;
            border-radius: 3px;
            font-size: 11px;
            display: inline-block;
            margin-left: 6px;
        }
        .contribution-title {
            font-size: 16px;
            font-weight: 600;
            color: #2c3e50;
            margin-bottom: 8px;
        }
        .contribution-meta { font-size: 13px; color: #7f8c8d; margin-bottom: 10px; }
        .contribution-abstract {
            font-size: 14px;
            line-height: 1.5;
            color: #555;
            max-height: 120px;
            overflow: hidden;
        }
        .contribution-abstract.expanded { max-height: none; }
        .contribution-footnotes { font-size: 12px; color: #95a5a6; margin-top: 10px; }
        .expand-btn {
            color: #3498db;
            cursor: pointer;
            font-size: 12px;
            text-decoration: underline;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>{{.Title}}</h1>
            <p>Interactive Conference Contributions Database</p>
        </div>

        <div class="stats-summary">
            <div id="stats-display">{{.Papers}} contributions across {{.Sessions}} sessions</div>
        </div>

        <div class="filter-bar">
            <input type="text" id="search-input" placeholder="Search contributions, titles, abstracts...">
            <select id="session-filter"><option value="">All Sessions</option></select>
            <select id="type-filter"><option value="">All Types</option></select>
            <button onclick="clearFilters()">Clear Filters</button>
        </div>

        <div class="contributions-grid" id="contributions-grid"></div>
    </div>

    <script>
        const CATALOG = {{.Catalog}};

        let allContributions = [];
        CATALOG.sessions.forEach(sessionData => {
            sessionData.papers.forEach(contribution => {
                contribution.session_name = sessionData.session_info.name;
                contribution.session_id = sessionData.session_info.id;
                allContributions.push(contribution);
            });
        });

        function populateFilters() {
            const sessionFilter = document.getElementById('session-filter');
            CATALOG.sessions.forEach(s => {
                const option = document.createElement('option');
                option.value = s.session_info.name;
                option.textContent = s.session_info.id + ' — ' + s.session_info.name;
                sessionFilter.appendChild(option);
            });

            const typeFilter = document.getElementById('type-filter');
            const types = [...new Set(allContributions.map(c => c.type).filter(t => t))].sort();
            types.forEach(t => {
                const option = document.createElement('option');
                option.value = t;
                option.textContent = t;
                typeFilter.appendChild(option);
            });
        }

        function renderCard(contribution) {
            const card = document.createElement('div');
            card.className = 'contribution-card';

            const abstractText = contribution.abstract || '';
            const long = abstractText.length > 200;
            const preview = long ? abstractText.substring(0, 200) + '...' : abstractText;

            card.innerHTML =
                '<div><span class="contribution-code">' + contribution.contribution_code + '</span>' +
                '<span class="session-tag">' + contribution.session_id + '</span></div>' +
                '<div class="contribution-title">' + (contribution.title || '(untitled)') + '</div>' +
                '<div class="contribution-meta">' +
                (contribution.type ? '<div><strong>Type:</strong> ' + contribution.type + '</div>' : '') +
                '<div><strong>Session:</strong> ' + contribution.session_name + '</div>' +
                (contribution.date_time ? '<div><strong>Date/Time:</strong> ' + contribution.date_time + '</div>' : '') +
                '</div>' +
                '<div class="contribution-abstract" id="abstract-' + contribution.contribution_id + '">' + preview + '</div>' +
                (long ? '<div class="expand-btn" onclick="toggleAbstract(\'' + contribution.contribution_id + '\')">Read more</div>' : '') +
                (contribution.footnotes ? '<div class="contribution-footnotes">' + contribution.footnotes + '</div>' : '');

            return card;
        }

        function toggleAbstract(contributionId) {
            const abstractEl = document.getElementById('abstract-' + contributionId);
            const contribution = allContributions.find(c => c.contribution_id === contributionId);
            if (abstractEl.classList.contains('expanded')) {
                abstractEl.classList.remove('expanded');
                abstractEl.textContent = contribution.abstract.substring(0, 200) + '...';
            } else {
                abstractEl.classList.add('expanded');
                abstractEl.textContent = contribution.abstract;
            }
        }

        function applyFilters() {
            const searchTerm = document.getElementById('search-input').value.toLowerCase();
            const sessionName = document.getElementById('session-filter').value;
            const typeName = document.getElementById('type-filter').value;

            const filtered = allContributions.filter(c => {
                if (sessionName && c.session_name !== sessionName) return false;
                if (typeName && c.type !== typeName) return false;
                if (!searchTerm) return true;
                return c.contribution_code.toLowerCase().includes(searchTerm) ||
                    (c.title && c.title.toLowerCase().includes(searchTerm)) ||
                    (c.abstract && c.abstract.toLowerCase().includes(searchTerm)) ||
                    (c.footnotes && c.footnotes.toLowerCase().includes(searchTerm));
            });

            render(filtered);
        }

        function render(contributions) {
            const grid = document.getElementById('contributions-grid');
            grid.innerHTML = '';
            contributions.forEach(c => grid.appendChild(renderCard(c)));

            document.getElementById('stats-display').textContent =
                contributions.length + ' of ' + allContributions.length + ' contributions across ' +
                CATALOG.sessions.length + ' sessions';
        }

        function clearFilters() {
            document.getElementById('search-input').value = '';
            document.getElementById('session-filter').value = '';
            document.getElementById('type-filter').value = '';
            applyFilters();
        }

        document.getElementById('search-input').addEventListener('input', applyFilters);
        document.getElementById('session-filter').addEventListener('change', applyFilters);
        document.getElementById('type-filter').addEventListener('change', applyFilters);

        populateFilters();
        render(allContributions);
    </script>
</body>
</html>
`))
