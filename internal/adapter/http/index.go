package http

// indexHTML is a minimal test page that calls /top from the browser. It is a
// presentation convenience, not part of the API surface.
const indexHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Top Places</title>
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <style>
        body { font-family: system-ui, sans-serif; max-width: 800px; margin: 40px auto; padding: 20px; }
        .form-group { margin: 15px 0; }
        label { display: block; margin-bottom: 5px; font-weight: 500; }
        input { width: 100%; padding: 8px; border: 1px solid #ddd; border-radius: 4px; }
        button { background: #2a6f4e; color: white; padding: 10px 20px; border: none; border-radius: 4px; cursor: pointer; font-size: 16px; }
        .business { border: 1px solid #eee; padding: 15px; margin: 10px 0; border-radius: 8px; }
        .business h3 { margin: 0 0 10px 0; }
        .meta { color: #666; font-size: 14px; }
        .score { font-weight: bold; }
        .attribution { margin-top: 20px; padding: 10px; background: #f9f9f9; border-radius: 4px; font-size: 12px; }
        .error { color: #b00020; }
    </style>
</head>
<body>
    <h1>Top Places Finder</h1>
    <p>Nearby places re-ranked by review-volume-weighted rating.</p>

    <div class="form-group">
        <label>What are you looking for?</label>
        <input type="text" id="term" placeholder="e.g., sushi, pizza, coffee" value="pizza">
    </div>
    <div class="form-group">
        <label>Latitude</label>
        <input type="number" step="0.0001" id="lat" value="43.6532">
    </div>
    <div class="form-group">
        <label>Longitude</label>
        <input type="number" step="0.0001" id="lng" value="-79.3832">
    </div>
    <div class="form-group">
        <label>Radius (meters)</label>
        <input type="number" id="radius" value="5000" min="100" max="40000">
    </div>
    <div class="form-group">
        <label>Max results</label>
        <input type="number" id="limit" value="10" min="1" max="50">
    </div>

    <button onclick="searchPlaces()">Search</button>

    <div id="results"></div>

    <script>
        async function searchPlaces() {
            const term = document.getElementById('term').value;
            const lat = document.getElementById('lat').value;
            const lng = document.getElementById('lng').value;
            const radius = document.getElementById('radius').value;
            const limit = document.getElementById('limit').value;

            const url = '/top?term=' + encodeURIComponent(term) +
                '&lat=' + lat + '&lng=' + lng +
                '&radius_m=' + radius + '&limit=' + limit;

            const results = document.getElementById('results');
            results.innerHTML = '<p>Loading...</p>';

            try {
                const response = await fetch(url);
                const data = await response.json();
                if (!response.ok) {
                    throw new Error(data.error || 'request failed');
                }

                let html = '<h2>Found ' + data.count + ' results for "' + data.term + '"</h2>';
                data.results.forEach((biz, idx) => {
                    html += '<div class="business">' +
                        '<h3>' + (idx + 1) + '. ' + biz.name + '</h3>' +
                        '<div class="meta"><span class="score">Score: ' + biz.score + '</span> | ' +
                        'Rating: ' + biz.rating + ' (' + biz.review_count + ' reviews) | ' +
                        (biz.price || 'N/A') + ' | ' + biz.distance_m + 'm away</div>' +
                        '<div class="meta">' + biz.address + '</div>' +
                        '<a href="' + biz.url + '" target="_blank">View listing</a>' +
                        '</div>';
                });
                html += '<div class="attribution">' + data.attribution + '</div>';
                results.innerHTML = html;
            } catch (err) {
                results.innerHTML = '<p class="error">Error: ' + err.message + '</p>';
            }
        }
    </script>
</body>
</html>
`
